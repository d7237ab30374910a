package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// dateLayout はDateのJSON/文字列表現（時刻成分なし）。
const dateLayout = "2006-01-02"

// Date は時刻成分を持たないカレンダー日付を表す。
// JSONでは"2006-01-02"形式、DBではdate型として扱う。
// 内部表現はUTC深夜0時に正規化したtime.Time。
type Date struct {
	t time.Time
}

// NewDate は年月日からDateを生成する。
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf はtime.Timeの日付部分（UTC基準）からDateを生成する。
func DateOf(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return NewDate(y, m, d)
}

// Today は現在のUTC日付を返す。
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate は"2006-01-02"形式の文字列をパースする。
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// Time はUTC深夜0時のtime.Timeを返す。
func (d Date) Time() time.Time {
	return d.t
}

// IsZero はゼロ値かを返す。
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// AddDays は指定日数後のDateを返す。負数で過去の日付を返す。
func (d Date) AddDays(days int) Date {
	return Date{t: d.t.AddDate(0, 0, days)}
}

// After はdがotherより後の日付かを返す。
func (d Date) After(other Date) bool {
	return d.t.After(other.t)
}

// DaysUntil はdからotherまでの日数（切り捨て）を返す。
func (d Date) DaysUntil(other Date) int {
	return int(other.t.Sub(d.t).Hours() / 24)
}

// String は"2006-01-02"形式の文字列を返す。
func (d Date) String() string {
	return d.t.Format(dateLayout)
}

// MarshalJSON はJSONエンコードを実装する。
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON はJSONデコードを実装する。
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value はdatabase/sql/driver.Valuerを実装する。
func (d Date) Value() (driver.Value, error) {
	return d.t, nil
}

// Scan はdatabase/sql.Scannerを実装する。
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = DateOf(v)
		return nil
	case []byte:
		parsed, err := ParseDate(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}
