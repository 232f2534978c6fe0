package kafka

import (
	"fmt"
	"strconv"
	"time"
)

// Canal 将行数据统一编码为字符串，这里集中做宽松转换，
// 脏值一律取零值而不是让单条消息卡死整个分区

func StrToString(val interface{}) string {
	if val == nil {
		return ""
	}
	if str, ok := val.(string); ok {
		return str
	}
	return fmt.Sprint(val)
}

func StrToUint64(val interface{}) uint64 {
	num, err := strconv.ParseUint(StrToString(val), 10, 64)
	if err != nil {
		return 0
	}
	return num
}

func StrToInt(val interface{}) int {
	num, err := strconv.Atoi(StrToString(val))
	if err != nil {
		return 0
	}
	return num
}

func StrToDateTime(val interface{}) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04:05", StrToString(val), time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}
