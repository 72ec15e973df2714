package repository

import (
	"encoding/base64"
	"time"
)

const (
	timeFormat = "2006-01-02T15:04:05.999Z07:00" // reduce precision loss with ms

	defaultPageNum int64 = 10
	maxPageNum     int64 = 30
)

// DecodeCursor 解析分页游标
func DecodeCursor(encodedTime string) (time.Time, error) {
	byt, err := base64.StdEncoding.DecodeString(encodedTime)
	if err != nil {
		return time.Time{}, err
	}

	return time.Parse(timeFormat, string(byt))
}

// EncodeCursor 生成分页游标
func EncodeCursor(t time.Time) string {
	return base64.StdEncoding.EncodeToString([]byte(t.Format(timeFormat)))
}

// PageVerify clamps the page size into a sane range.
func PageVerify(num *int64) {
	if *num <= 0 {
		*num = defaultPageNum
	}
	if *num > maxPageNum {
		*num = maxPageNum
	}
}
