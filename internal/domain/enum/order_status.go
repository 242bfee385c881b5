package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// OrderStatus represents the lifecycle status of a purchase or invoice.
// The only legal transition is Pending -> Approved; approved orders are
// terminal and pending orders may instead be deleted outright.
type OrderStatus int

const (
	OrderStatusPending  OrderStatus = 0
	OrderStatusApproved OrderStatus = 1
)

func (s OrderStatus) String() string {
	return [...]string{"pending", "approved"}[s]
}

// ParseOrderStatus converts a status string to its OrderStatus value
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch s {
	case "pending":
		return OrderStatusPending, nil
	case "approved":
		return OrderStatusApproved, nil
	}
	return OrderStatusPending, fmt.Errorf("unknown order status %q", s)
}

func (s OrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = OrderStatus(i)
		return nil
	}
	switch str {
	case "pending":
		*s = OrderStatusPending
	case "approved":
		*s = OrderStatusApproved
	}
	return nil
}

func (s OrderStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *OrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = OrderStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = OrderStatus(v)
	case int:
		*s = OrderStatus(v)
	}
	return nil
}
