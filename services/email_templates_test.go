package services

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/bakedbyann/bakery-backend/config"
	"github.com/bakedbyann/bakery-backend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testEmailConfig = &config.EmailConfig{
	FromAddress: "onboarding@resend.dev",
	FromName:    "Baked by Ann",
	Recipient:   "orders@bakedbyann.com",
}

var testSubmittedAt = time.Date(2025, 3, 1, 14, 30, 0, 0, time.UTC)

func TestStarRating(t *testing.T) {
	tests := []struct {
		rating   int
		expected string
	}{
		{0, "☆☆☆☆☆"},
		{1, "★☆☆☆☆"},
		{3, "★★★☆☆"},
		{5, "★★★★★"},
		{-2, "☆☆☆☆☆"},
		{9, "★★★★★"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, StarRating(tt.rating), "rating %d", tt.rating)
	}
}

func TestFormatLongDate(t *testing.T) {
	assert.Equal(t, "Sunday, June 1, 2025", FormatLongDate("2025-06-01"))
	assert.Equal(t, "Wednesday, January 1, 2025", FormatLongDate("2025-01-01"))

	// Un-parseable input falls back to the raw string.
	assert.Equal(t, "sometime next spring", FormatLongDate("sometime next spring"))
	assert.Equal(t, "", FormatLongDate(""))
}

func TestDecodeInspirationImages(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("fake image bytes"))

	images := []types.InlineImage{
		{Name: "venue.jpg", Data: "data:image/jpeg;base64," + payload},
		{Name: "", Data: "data:image/png;base64," + payload},
		{Name: "broken.gif", Data: "data:image/gif;base64,!!!not-base64!!!"},
		{Name: "nocomma.jpg", Data: payload},
	}

	attachments := DecodeInspirationImages(images)
	require.Len(t, attachments, 2)

	assert.Equal(t, "venue.jpg", attachments[0].Filename)
	assert.Equal(t, []byte("fake image bytes"), attachments[0].Content)

	// Missing upload name falls back to a derived filename.
	assert.Equal(t, "inspiration-2.png", attachments[1].Filename)
}

func TestBuildEnquiryEmail(t *testing.T) {
	req := &types.EnquiryRequest{
		Name:        "Jo",
		Email:       "jo@x.com",
		Venue:       "Barn",
		WeddingDate: "2025-06-01",
		GuestCount:  "80",
	}

	msg, err := BuildEnquiryEmail(testEmailConfig, req, testSubmittedAt)
	require.NoError(t, err)

	assert.Equal(t, "Baked by Ann <onboarding@resend.dev>", msg.From)
	assert.Equal(t, "orders@bakedbyann.com", msg.To)
	assert.Equal(t, "jo@x.com", msg.ReplyTo)
	assert.Equal(t, "New Wedding Enquiry from Jo - Baked by Ann", msg.Subject)

	assert.Contains(t, msg.HTML, "Sunday, June 1, 2025")
	assert.Contains(t, msg.HTML, "80 guests")
	assert.Contains(t, msg.HTML, "Submitted on Saturday, March 1, 2025 at 2:30 PM")

	// Optional sections are omitted entirely, not rendered empty.
	assert.NotContains(t, msg.HTML, "Social Media")
	assert.NotContains(t, msg.HTML, "Budget Estimate")
	assert.NotContains(t, msg.HTML, "Additional Details")
	assert.NotContains(t, msg.HTML, "Inspiration Images")
	assert.Empty(t, msg.Attachments)
}

func TestBuildEnquiryEmailOptionalFields(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("img"))
	req := &types.EnquiryRequest{
		Name:              "Jo",
		Email:             "jo@x.com",
		SocialMedia:       "@jo.bakes",
		Venue:             "Barn",
		WeddingDate:       "2025-06-01",
		GuestCount:        "80",
		Budget:            "£500-£750",
		AdditionalDetails: "Two tiers\nLemon sponge",
		InspirationImages: []types.InlineImage{
			{Data: "data:image/jpeg;base64," + payload},
			{Data: "data:image/jpeg;base64," + payload},
		},
	}

	msg, err := BuildEnquiryEmail(testEmailConfig, req, testSubmittedAt)
	require.NoError(t, err)

	assert.Contains(t, msg.HTML, "@jo.bakes")
	assert.Contains(t, msg.HTML, "£500-£750")
	assert.Contains(t, msg.HTML, "Two tiers<br>Lemon sponge")
	assert.Contains(t, msg.HTML, "2 images attached")
	require.Len(t, msg.Attachments, 2)
	assert.Equal(t, "inspiration-1.jpg", msg.Attachments[0].Filename)
	assert.Equal(t, "inspiration-2.jpg", msg.Attachments[1].Filename)
}

func TestBuildEnquiryEmailEscapesUserInput(t *testing.T) {
	req := &types.EnquiryRequest{
		Name:        `<script>alert("x")</script>`,
		Email:       "jo@x.com",
		Venue:       "Ann's & Co's \"Barn\"",
		WeddingDate: "2025-06-01",
		GuestCount:  "80",
	}

	msg, err := BuildEnquiryEmail(testEmailConfig, req, testSubmittedAt)
	require.NoError(t, err)

	assert.NotContains(t, msg.HTML, "<script>")
	assert.Contains(t, msg.HTML, "&lt;script&gt;")
	assert.Contains(t, msg.HTML, "Ann&#039;s &amp; Co&#039;s &quot;Barn&quot;")
}

func TestBuildEnquiryEmailSingularAttachmentLine(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("img"))
	req := &types.EnquiryRequest{
		Name:              "Jo",
		Email:             "jo@x.com",
		Venue:             "Barn",
		WeddingDate:       "2025-06-01",
		GuestCount:        "80",
		InspirationImages: []types.InlineImage{{Data: "data:image/png;base64," + payload}},
	}

	msg, err := BuildEnquiryEmail(testEmailConfig, req, testSubmittedAt)
	require.NoError(t, err)
	assert.Contains(t, msg.HTML, "1 image attached")
	assert.NotContains(t, msg.HTML, "1 images attached")
}

func TestBuildBookingEmail(t *testing.T) {
	req := &types.BookingRequest{
		Name:          "Sam",
		Email:         "sam@x.com",
		WorkshopType:  "Macaron Masterclass",
		Location:      "Leeds",
		PreferredDate: "2025-09-15",
		GroupSize:     "6",
	}

	msg, err := BuildBookingEmail(testEmailConfig, req, testSubmittedAt)
	require.NoError(t, err)

	assert.Equal(t, "sam@x.com", msg.ReplyTo)
	assert.Equal(t, "New Workshop Enquiry from Sam - Baked by Ann", msg.Subject)
	assert.Contains(t, msg.HTML, "Macaron Masterclass")
	assert.Contains(t, msg.HTML, "Monday, September 15, 2025")
	assert.Contains(t, msg.HTML, "6 people")
	assert.NotContains(t, msg.HTML, ">Phone<")
	assert.Empty(t, msg.Attachments)

	req.Phone = "07700 900123"
	msg, err = BuildBookingEmail(testEmailConfig, req, testSubmittedAt)
	require.NoError(t, err)
	assert.Contains(t, msg.HTML, "07700 900123")
}

func TestBuildFeedbackEmail(t *testing.T) {
	req := &types.FeedbackRequest{
		ClassDate:                "2025-03-10",
		OverallSatisfaction:      3,
		RecommendationLikelihood: 5,
		EnjoyedMost:              "The hands-on piping practice",
		Improvements:             "More time\nfor questions please",
	}

	msg, err := BuildFeedbackEmail(testEmailConfig, req, testSubmittedAt)
	require.NoError(t, err)

	// Feedback is anonymous: no reply-to.
	assert.Empty(t, msg.ReplyTo)
	assert.Equal(t, "Baked by Ann Feedback <onboarding@resend.dev>", msg.From)
	assert.Equal(t, "Class Feedback - Monday, March 10, 2025 - Baked by Ann", msg.Subject)

	assert.Contains(t, msg.HTML, "★★★☆☆")
	assert.Contains(t, msg.HTML, "3/5")
	assert.Contains(t, msg.HTML, "★★★★★")
	assert.Contains(t, msg.HTML, "5/5")
	assert.Contains(t, msg.HTML, "More time<br>for questions please")
	assert.Contains(t, msg.HTML, "submitted anonymously")
}

func TestBuildFeedbackEmailUsesFeedbackSender(t *testing.T) {
	cfg := &config.EmailConfig{
		FromAddress:         "onboarding@resend.dev",
		FromName:            "Baked by Ann",
		FeedbackFromAddress: "feedback@bakedbyann.com",
		Recipient:           "orders@bakedbyann.com",
	}
	req := &types.FeedbackRequest{
		ClassDate:                "2025-03-10",
		OverallSatisfaction:      4,
		RecommendationLikelihood: 4,
		EnjoyedMost:              "Everything about it",
		Improvements:             "Nothing comes to mind",
	}

	msg, err := BuildFeedbackEmail(cfg, req, testSubmittedAt)
	require.NoError(t, err)
	assert.Equal(t, "Baked by Ann Feedback <feedback@bakedbyann.com>", msg.From)
}

// A malformed date must never break rendering; the raw string is shown.
func TestBuildFeedbackEmailMalformedDate(t *testing.T) {
	req := &types.FeedbackRequest{
		ClassDate:                "last tuesday-ish",
		OverallSatisfaction:      4,
		RecommendationLikelihood: 4,
		EnjoyedMost:              "Everything about it",
		Improvements:             "Nothing comes to mind",
	}

	msg, err := BuildFeedbackEmail(testEmailConfig, req, testSubmittedAt)
	require.NoError(t, err)
	assert.True(t, strings.Contains(msg.HTML, "last tuesday-ish"))
	assert.Contains(t, msg.Subject, "last tuesday-ish")
}
