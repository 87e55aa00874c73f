package types

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	apperrors "github.com/bakedbyann/bakery-backend/errors"
)

// Validation messages are returned to clients verbatim, so they are fixed
// here rather than composed ad hoc in handlers.
const (
	MsgMissingRequiredFields = "Please fill in all required fields"
	MsgInvalidEmail          = "Valid email is required"
	MsgRatingOutOfRange      = "Star ratings must be between 1 and 5"
	MsgFeedbackTooShort      = "Please provide more detailed feedback (at least 10 characters)"

	// MinFeedbackLength is the minimum trimmed length of free-text feedback answers.
	MinFeedbackLength = 10
)

// FlexibleString accepts either a JSON string or a JSON number. The site's
// forms submit count fields as strings while API clients tend to send
// numbers; both normalize to the string representation used in emails.
type FlexibleString string

func (s *FlexibleString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = FlexibleString(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*s = FlexibleString(num.String())
	return nil
}

func (s FlexibleString) String() string {
	return string(s)
}

// InlineImage is an image uploaded with an enquiry, carried as a data URI
// (or bare base64 payload) in the request body.
type InlineImage struct {
	Name string `json:"name"`
	Data string `json:"data"`
}

// EnquiryRequest is the body of a wedding enquiry submission.
type EnquiryRequest struct {
	Name              string         `json:"name"`
	Email             string         `json:"email"`
	SocialMedia       string         `json:"socialMedia"`
	Venue             string         `json:"venue"`
	WeddingDate       string         `json:"weddingDate"`
	GuestCount        FlexibleString `json:"guestCount"`
	Budget            string         `json:"budget"`
	AdditionalDetails string         `json:"additionalDetails"`
	InspirationImages []InlineImage  `json:"inspirationImages"`
}

// Validate checks required fields first, then format rules, returning the
// first failure found. The short-circuit order is part of the API contract.
func (r *EnquiryRequest) Validate() error {
	if r.Name == "" || r.Email == "" || r.Venue == "" || r.WeddingDate == "" || r.GuestCount == "" {
		return apperrors.ValidationFailed(MsgMissingRequiredFields)
	}
	if !strings.Contains(r.Email, "@") {
		return apperrors.ValidationFailed(MsgInvalidEmail)
	}
	return nil
}

// BookingRequest is the body of a workshop booking submission.
type BookingRequest struct {
	Name              string         `json:"name"`
	Email             string         `json:"email"`
	Phone             string         `json:"phone"`
	WorkshopType      string         `json:"workshopType"`
	Location          string         `json:"location"`
	PreferredDate     string         `json:"preferredDate"`
	GroupSize         FlexibleString `json:"groupSize"`
	AdditionalDetails string         `json:"additionalDetails"`
}

// Validate requires all six booking fields; phone and additional details
// stay optional.
func (r *BookingRequest) Validate() error {
	if r.Name == "" || r.Email == "" || r.WorkshopType == "" ||
		r.Location == "" || r.PreferredDate == "" || r.GroupSize == "" {
		return apperrors.ValidationFailed(MsgMissingRequiredFields)
	}
	if !strings.Contains(r.Email, "@") {
		return apperrors.ValidationFailed(MsgInvalidEmail)
	}
	return nil
}

// FeedbackRequest is the body of an anonymous class feedback submission.
type FeedbackRequest struct {
	ClassDate                string `json:"classDate"`
	OverallSatisfaction      int    `json:"overallSatisfaction"`
	RecommendationLikelihood int    `json:"recommendationLikelihood"`
	EnjoyedMost              string `json:"enjoyedMost"`
	Improvements             string `json:"improvements"`
}

// Validate checks presence, then rating ranges, then free-text length,
// returning the first failure found.
func (r *FeedbackRequest) Validate() error {
	if r.ClassDate == "" || r.OverallSatisfaction == 0 || r.RecommendationLikelihood == 0 ||
		r.EnjoyedMost == "" || r.Improvements == "" {
		return apperrors.ValidationFailed(MsgMissingRequiredFields)
	}
	if r.OverallSatisfaction < 1 || r.OverallSatisfaction > 5 ||
		r.RecommendationLikelihood < 1 || r.RecommendationLikelihood > 5 {
		return apperrors.ValidationFailed(MsgRatingOutOfRange)
	}
	if utf8.RuneCountInString(strings.TrimSpace(r.EnjoyedMost)) < MinFeedbackLength ||
		utf8.RuneCountInString(strings.TrimSpace(r.Improvements)) < MinFeedbackLength {
		return apperrors.ValidationFailed(MsgFeedbackTooShort)
	}
	return nil
}
