package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shamaiem10/Vytal/internal/services"
)

type signupInput struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type credentialsInput struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type diaryPayload struct {
	UserID   *looseUserID `json:"user_id"`
	Date     looseText    `json:"date"`
	Time     looseText    `json:"time"`
	Mood     looseText    `json:"mood"`
	Symptoms looseList    `json:"symptoms"`
	Sugar    looseNumber  `json:"sugar"`
	BP       looseText    `json:"bp"`
	HR       looseNumber  `json:"hr"`
	Temp     looseNumber  `json:"temp"`
	Notes    looseText    `json:"notes"`
}

func (payload diaryPayload) toInput() services.DiaryInput {
	input := services.DiaryInput{
		Date:     string(payload.Date),
		Time:     string(payload.Time),
		Mood:     string(payload.Mood),
		Symptoms: []string(payload.Symptoms),
		Sugar:    payload.Sugar.value,
		BP:       string(payload.BP),
		HR:       payload.HR.value,
		Temp:     payload.Temp.value,
		Notes:    string(payload.Notes),
	}
	if payload.UserID != nil {
		userID := uint(*payload.UserID)
		input.UserID = &userID
	}
	return input
}

var jsonNull = []byte("null")

// looseText accepts a JSON string or number; mood arrives as either.
type looseText string

func (text *looseText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, jsonNull) {
		*text = ""
		return nil
	}
	var value string
	if err := json.Unmarshal(data, &value); err == nil {
		*text = looseText(value)
		return nil
	}
	var number json.Number
	if err := json.Unmarshal(data, &number); err == nil {
		*text = looseText(number.String())
		return nil
	}
	return fmt.Errorf("expected text, got %s", data)
}

// looseList accepts a list of strings or a single free-text string.
type looseList []string

func (list *looseList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, jsonNull) {
		*list = nil
		return nil
	}
	var single looseText
	if err := single.UnmarshalJSON(data); err == nil {
		*list = looseList{string(single)}
		return nil
	}
	var items []looseText
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("expected a list of text, got %s", data)
	}
	values := make([]string, 0, len(items))
	for _, item := range items {
		values = append(values, string(item))
	}
	*list = values
	return nil
}

// looseNumber accepts a JSON number or a numeric string; null and "" mean
// not recorded.
type looseNumber struct {
	value *float64
}

func (number *looseNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, jsonNull) {
		number.value = nil
		return nil
	}
	var parsed float64
	if err := json.Unmarshal(data, &parsed); err == nil {
		return number.set(parsed)
	}
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return fmt.Errorf("expected a number, got %s", data)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		number.value = nil
		return nil
	}
	parsed, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return fmt.Errorf("expected a number, got %q", text)
	}
	return number.set(parsed)
}

// set rejects Inf and NaN, which strconv accepts but JSON cannot encode.
func (number *looseNumber) set(value float64) error {
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return fmt.Errorf("expected a finite number, got %v", value)
	}
	number.value = &value
	return nil
}

// looseUserID accepts 7 or "7".
type looseUserID uint

func (id *looseUserID) UnmarshalJSON(data []byte) error {
	var text looseText
	if err := text.UnmarshalJSON(data); err != nil {
		return err
	}
	parsed, err := parseUserID(string(text))
	if err != nil {
		return err
	}
	*id = looseUserID(*parsed)
	return nil
}
