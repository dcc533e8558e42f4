package dto

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/hongminglow/attendance-be/internal/models"
)

// ID decodes a JSON number or a numeric string such as "7".
type ID int64

func (id *ID) UnmarshalJSON(b []byte) error {
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	if n == "" {
		*id = 0
		return nil
	}
	v, err := strconv.ParseInt(n.String(), 10, 64)
	if err != nil {
		return fmt.Errorf("id %q is not an integer", n)
	}
	*id = ID(v)
	return nil
}

type AttendanceRequest struct {
	EmployeeID ID `json:"employee_id"`
}

type ClockOutResponse struct {
	Message      string       `json:"message"`
	WorkingHours models.Hours `json:"working_hours"`
}

type ApproveRequest struct {
	UserID ID `json:"user_id"`
}
