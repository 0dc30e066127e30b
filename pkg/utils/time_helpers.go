package utils

import (
	"database/sql"
	"time"
)

const timeLayout = "2006-01-02 15:04:05"

func FormatTime(t time.Time) string {
	return t.Local().Format(timeLayout)
}

func FormatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatTime(*t)
	return &s
}

func NullTimeToString(nt sql.NullTime) *string {
	if !nt.Valid {
		return nil
	}
	return FormatTimePtr(&nt.Time)
}
