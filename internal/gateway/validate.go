package gateway

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

type bookingBody struct {
	ItemID *int64     `json:"itemId"`
	Start  *time.Time `json:"start"`
	End    *time.Time `json:"end"`
}

func validateBooking(raw []byte) error {
	var body bookingBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return errors.New("invalid request body")
	}
	if body.ItemID == nil {
		return errors.New("itemId is required")
	}
	if body.Start == nil || body.End == nil {
		return errors.New("start and end are required")
	}
	if !body.Start.Before(*body.End) {
		return errors.New("start must be before end")
	}
	if body.Start.Before(time.Now()) {
		return errors.New("start must not be in the past")
	}
	return nil
}

type userBody struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

func validateUser(raw []byte) error {
	var body userBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return errors.New("invalid request body")
	}
	if body.Name == nil || strings.TrimSpace(*body.Name) == "" {
		return errors.New("name is required")
	}
	if body.Email == nil {
		return errors.New("email is required")
	}
	return checkEmail(*body.Email)
}

func validateUserPatch(raw []byte) error {
	var body userBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return errors.New("invalid request body")
	}
	if body.Email != nil {
		return checkEmail(*body.Email)
	}
	return nil
}

func checkEmail(email string) error {
	if strings.TrimSpace(email) == "" || !strings.Contains(email, "@") {
		return errors.New("email must be a valid address")
	}
	return nil
}

type itemBody struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

func validateItem(raw []byte) error {
	var body itemBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return errors.New("invalid request body")
	}
	if body.Name == nil || strings.TrimSpace(*body.Name) == "" {
		return errors.New("name is required")
	}
	if body.Description == nil || strings.TrimSpace(*body.Description) == "" {
		return errors.New("description is required")
	}
	if body.Available == nil {
		return errors.New("available is required")
	}
	return nil
}

type commentBody struct {
	Text *string `json:"text"`
}

func validateComment(raw []byte) error {
	var body commentBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return errors.New("invalid request body")
	}
	if body.Text == nil || strings.TrimSpace(*body.Text) == "" {
		return errors.New("text must not be blank")
	}
	return nil
}

type itemRequestBody struct {
	Description *string `json:"description"`
}

func validateItemRequest(raw []byte) error {
	var body itemRequestBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return errors.New("invalid request body")
	}
	if body.Description == nil || strings.TrimSpace(*body.Description) == "" {
		return errors.New("description must not be blank")
	}
	return nil
}
