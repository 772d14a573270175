// Command-line batch entrypoint: run one crawl from work-item input
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"newshound/newshound/config"
	"newshound/newshound/controllers"
	"newshound/newshound/sources/psql"
	"newshound/newshound/utils/logging"
	"newshound/newshound/utils/types"
	"newshound/newshound/utils/workitems"

	"go.uber.org/zap"
)

func main() {
	logging.InitLogger()
	cfg := config.LoadConfig()

	wi := workitems.Load(os.Getenv("WORKITEM_FILE"))
	req := types.CrawlRequest{
		SearchPhrase:   wi.GetVariable("search_phrase", ""),
		Categories:     wi.GetVariable("categories", ""),
		Months:         wi.GetIntVariable("months", 0),
		SortBy:         wi.GetVariable("sort_by", "Newest"),
		TimeoutMinutes: wi.GetIntVariable("timeout_minutes", 0),
	}
	if req.SearchPhrase == "" {
		logging.AppLogger.Info("no search phrase in work item, nothing to do")
		return
	}

	var db *psql.Database
	if cfg.DatabaseEnabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		var err error
		db, err = psql.NewDatabase(ctx, cfg)
		if err != nil {
			logging.ErrorLogger.Error("database connection error", zap.Error(err))
			os.Exit(1)
		}
		defer db.Close()
	}

	ctrl, err := controllers.NewCrawlController(cfg, db)
	if err != nil {
		logging.ErrorLogger.Error("crawl controller init error", zap.Error(err))
		os.Exit(1)
	}

	resp, err := ctrl.RunCrawl(context.Background(), req)
	if resp != nil {
		out, _ := json.MarshalIndent(resp, "", "  ")
		fmt.Println(string(out))
	}
	if err != nil {
		logging.ErrorLogger.Error("crawl failed", zap.Error(err))
		os.Exit(1)
	}
}
