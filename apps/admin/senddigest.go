package main

import (
	"context"
	"fmt"
	"time"
)

var timeNow = time.Now // mockable

// sendDigest runs one digest mailing; meant to be invoked from cron.
func (cli *commandLine) sendDigest(kind string) error {
	ctx := context.Background()
	switch kind {
	case "weekly":
		return cli.digestSvc.SendWeekly(ctx, timeNow())
	case "changes":
		return cli.digestSvc.SendDailyChanges(ctx, timeNow())
	case "exams":
		return cli.digestSvc.SendDailyExams(ctx, timeNow())
	default:
		return fmt.Errorf("%q: no such digest type", kind)
	}
}
