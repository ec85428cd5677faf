package settingsstore

import (
	"time"

	"github.com/robfig/cron/v3"
)

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateCronSchedule checks that a schedule uses the standard 5-field
// cron format.
func ValidateCronSchedule(schedule string) error {
	_, err := cronParser.Parse(schedule)
	return err
}

// GetNextRunTime returns when the schedule would next fire.
func GetNextRunTime(schedule string) (time.Time, error) {
	sched, err := cronParser.Parse(schedule)
	if err != nil {
		return time.Time{}, err
	}
	return sched.Next(time.Now()), nil
}
