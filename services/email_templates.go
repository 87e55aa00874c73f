package services

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/bakedbyann/bakery-backend/config"
	"github.com/bakedbyann/bakery-backend/pkg/sanitize"
	"github.com/bakedbyann/bakery-backend/types"
)

const (
	starFilled = "★"
	starEmpty  = "☆"

	longDateLayout  = "Monday, January 2, 2006"
	timestampLayout = "Monday, January 2, 2006 at 3:04 PM"
)

// StarRating renders a 1-5 rating as a fixed five-glyph string, filled
// glyphs first. Out-of-range values are clamped.
func StarRating(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	return strings.Repeat(starFilled, rating) + strings.Repeat(starEmpty, 5-rating)
}

// FormatLongDate formats a submitted date string as a long-form calendar
// date. An un-parseable input is returned unchanged so a malformed date
// never breaks rendering.
func FormatLongDate(raw string) string {
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05", "01/02/2006"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(longDateLayout)
		}
	}
	return raw
}

// DecodeInspirationImages converts data-URI encoded uploads into binary
// attachments. Images without a base64 payload, or with one that fails to
// decode, are skipped rather than failing the whole submission. Filenames
// fall back to inspiration-<n>.<ext>, with the extension derived from the
// data URI's media type.
func DecodeInspirationImages(images []types.InlineImage) []types.EmailAttachment {
	var attachments []types.EmailAttachment
	for i, img := range images {
		prefix, payload, found := strings.Cut(img.Data, ",")
		if !found {
			continue
		}
		content, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			continue
		}

		filename := img.Name
		if filename == "" {
			filename = fmt.Sprintf("inspiration-%d.%s", i+1, extensionFromDataURI(prefix))
		}
		attachments = append(attachments, types.EmailAttachment{
			Filename: filename,
			Content:  content,
		})
	}
	return attachments
}

// extensionFromDataURI derives a file extension from a data URI prefix such
// as "data:image/png;base64".
func extensionFromDataURI(prefix string) string {
	mediaType := strings.TrimPrefix(prefix, "data:")
	if i := strings.IndexByte(mediaType, ';'); i >= 0 {
		mediaType = mediaType[:i]
	}
	switch mediaType {
	case "image/png":
		return "png"
	case "image/gif":
		return "gif"
	case "image/webp":
		return "webp"
	default:
		return "jpg"
	}
}

// escaped runs the sanitizer and marks the result safe for interpolation.
// Every user-controllable value goes through here before it reaches a
// template.
func escaped(text string) template.HTML {
	return template.HTML(sanitize.EscapeHTML(text))
}

// escapedMultiline escapes first, then converts newlines to <br>, in that
// order.
func escapedMultiline(text string) template.HTML {
	return template.HTML(sanitize.NewlinesToBreaks(sanitize.EscapeHTML(text)))
}

type enquiryEmailData struct {
	Name              template.HTML
	Email             template.HTML
	SocialMedia       template.HTML
	Venue             template.HTML
	WeddingDate       template.HTML
	GuestCount        template.HTML
	Budget            template.HTML
	AdditionalDetails template.HTML
	AttachmentCount   int
	SubmittedAt       string
}

type bookingEmailData struct {
	Name              template.HTML
	Email             template.HTML
	Phone             template.HTML
	WorkshopType      template.HTML
	Location          template.HTML
	PreferredDate     template.HTML
	GroupSize         template.HTML
	AdditionalDetails template.HTML
	SubmittedAt       string
}

type feedbackEmailData struct {
	FormattedDate            string
	OverallSatisfaction      int
	RecommendationLikelihood int
	OverallStars             string
	RecommendationStars      string
	EnjoyedMost              template.HTML
	Improvements             template.HTML
	SubmittedAt              string
}

var (
	enquiryTmpl  = template.Must(template.New("enquiry").Parse(enquiryEmailTemplate))
	bookingTmpl  = template.Must(template.New("booking").Parse(bookingEmailTemplate))
	feedbackTmpl = template.Must(template.New("feedback").Parse(feedbackEmailTemplate))
)

// BuildEnquiryEmail renders the notification for a validated wedding
// enquiry. The reply-to address is the submitter's so the bakery can answer
// directly.
func BuildEnquiryEmail(cfg *config.EmailConfig, req *types.EnquiryRequest, submittedAt time.Time) (*types.EmailMessage, error) {
	attachments := DecodeInspirationImages(req.InspirationImages)

	data := enquiryEmailData{
		Name:              escaped(req.Name),
		Email:             escaped(req.Email),
		SocialMedia:       escaped(req.SocialMedia),
		Venue:             escaped(req.Venue),
		WeddingDate:       escaped(FormatLongDate(req.WeddingDate)),
		GuestCount:        escaped(req.GuestCount.String()),
		Budget:            escaped(req.Budget),
		AdditionalDetails: escapedMultiline(req.AdditionalDetails),
		AttachmentCount:   len(attachments),
		SubmittedAt:       submittedAt.Format(timestampLayout),
	}

	var body bytes.Buffer
	if err := enquiryTmpl.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("failed to execute enquiry template: %w", err)
	}

	return &types.EmailMessage{
		From:        fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromAddress),
		To:          cfg.Recipient,
		ReplyTo:     req.Email,
		Subject:     fmt.Sprintf("New Wedding Enquiry from %s - %s", sanitize.EscapeHTML(req.Name), cfg.FromName),
		HTML:        body.String(),
		Attachments: attachments,
	}, nil
}

// BuildBookingEmail renders the notification for a validated workshop
// booking enquiry.
func BuildBookingEmail(cfg *config.EmailConfig, req *types.BookingRequest, submittedAt time.Time) (*types.EmailMessage, error) {
	data := bookingEmailData{
		Name:              escaped(req.Name),
		Email:             escaped(req.Email),
		Phone:             escaped(req.Phone),
		WorkshopType:      escaped(req.WorkshopType),
		Location:          escaped(req.Location),
		PreferredDate:     escaped(FormatLongDate(req.PreferredDate)),
		GroupSize:         escaped(req.GroupSize.String()),
		AdditionalDetails: escapedMultiline(req.AdditionalDetails),
		SubmittedAt:       submittedAt.Format(timestampLayout),
	}

	var body bytes.Buffer
	if err := bookingTmpl.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("failed to execute booking template: %w", err)
	}

	return &types.EmailMessage{
		From:    fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromAddress),
		To:      cfg.Recipient,
		ReplyTo: req.Email,
		Subject: fmt.Sprintf("New Workshop Enquiry from %s - %s", sanitize.EscapeHTML(req.Name), cfg.FromName),
		HTML:    body.String(),
	}, nil
}

// BuildFeedbackEmail renders the notification for validated class feedback.
// Feedback is anonymous, so the message carries no reply-to address.
func BuildFeedbackEmail(cfg *config.EmailConfig, req *types.FeedbackRequest, submittedAt time.Time) (*types.EmailMessage, error) {
	formattedDate := FormatLongDate(req.ClassDate)

	data := feedbackEmailData{
		FormattedDate:            formattedDate,
		OverallSatisfaction:      req.OverallSatisfaction,
		RecommendationLikelihood: req.RecommendationLikelihood,
		OverallStars:             StarRating(req.OverallSatisfaction),
		RecommendationStars:      StarRating(req.RecommendationLikelihood),
		EnjoyedMost:              escapedMultiline(req.EnjoyedMost),
		Improvements:             escapedMultiline(req.Improvements),
		SubmittedAt:              submittedAt.Format(timestampLayout),
	}

	var body bytes.Buffer
	if err := feedbackTmpl.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("failed to execute feedback template: %w", err)
	}

	return &types.EmailMessage{
		From:    fmt.Sprintf("%s Feedback <%s>", cfg.FromName, cfg.FeedbackFrom()),
		To:      cfg.Recipient,
		Subject: fmt.Sprintf("Class Feedback - %s - %s", formattedDate, cfg.FromName),
		HTML:    body.String(),
	}, nil
}

const emailStyles = `
    body {
      font-family: Arial, sans-serif;
      line-height: 1.6;
      color: #1F2937;
      background-color: #F3F4F6;
    }
    .container {
      max-width: 600px;
      margin: 0 auto;
      padding: 20px;
    }
    .header {
      background: linear-gradient(135deg, #5ab6b5 0%, #449a99 100%);
      color: white;
      padding: 30px 20px;
      border-radius: 8px 8px 0 0;
      text-align: center;
    }
    .header h2 {
      margin: 0;
      font-size: 26px;
      font-weight: bold;
      color: #1F2937;
    }
    .content {
      background-color: #FFFFFF;
      padding: 30px 25px;
      border-radius: 0 0 8px 8px;
      border: 2px solid #5ab6b5;
      border-top: none;
    }
    .field {
      margin-bottom: 20px;
      padding-bottom: 20px;
      border-bottom: 2px solid #E5E7EB;
    }
    .field:last-child {
      border-bottom: none;
      margin-bottom: 0;
      padding-bottom: 0;
    }
    .label {
      font-weight: bold;
      color: #357b7a;
      margin-bottom: 8px;
      font-size: 12px;
      text-transform: uppercase;
      letter-spacing: 1px;
    }
    .value {
      color: #111827;
      font-size: 18px;
      font-weight: 500;
      line-height: 1.5;
    }
    .footer {
      margin-top: 20px;
      padding-top: 20px;
      border-top: 2px solid #5ab6b5;
      font-size: 13px;
      color: #4B5563;
      text-align: center;
    }
    .highlight {
      background-color: #D1FAF9;
      padding: 20px;
      border-radius: 8px;
      border-left: 5px solid #357b7a;
    }
    .stars {
      color: #f59e0b;
      font-size: 24px;
      letter-spacing: 2px;
    }
`

const enquiryEmailTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <style>` + emailStyles + `</style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h2>💍 New Wedding Enquiry</h2>
      <p style="margin: 10px 0 0 0; font-size: 16px; color: #1F2937;">Baked by Ann</p>
    </div>
    <div class="content">
      <div class="field">
        <div class="label">Customer Name</div>
        <div class="value">{{.Name}}</div>
      </div>

      <div class="field">
        <div class="label">Email Address</div>
        <div class="value"><a href="mailto:{{.Email}}" style="color: #1F2937; text-decoration: none;">{{.Email}}</a></div>
      </div>

      {{if .SocialMedia}}<div class="field">
        <div class="label">Social Media</div>
        <div class="value">{{.SocialMedia}}</div>
      </div>{{end}}

      <div class="field">
        <div class="label">Venue</div>
        <div class="value">{{.Venue}}</div>
      </div>

      <div class="field highlight">
        <div class="label">Wedding Date</div>
        <div class="value" style="font-size: 20px; font-weight: bold; color: #1F2937;">{{.WeddingDate}}</div>
      </div>

      <div class="field">
        <div class="label">Number of Guests</div>
        <div class="value">{{.GuestCount}} guests</div>
      </div>

      {{if .Budget}}<div class="field">
        <div class="label">Budget Estimate</div>
        <div class="value">{{.Budget}}</div>
      </div>{{end}}

      {{if .AdditionalDetails}}<div class="field">
        <div class="label">Additional Details</div>
        <div class="value">{{.AdditionalDetails}}</div>
      </div>{{end}}

      {{if .AttachmentCount}}<div class="field">
        <div class="label">Inspiration Images</div>
        <div class="value">{{.AttachmentCount}} image{{if gt .AttachmentCount 1}}s{{end}} attached</div>
      </div>{{end}}
    </div>
    <div class="footer">
      <p>Submitted on {{.SubmittedAt}}</p>
      <p style="margin-top: 10px;">Reply directly to this email to contact the customer.</p>
    </div>
  </div>
</body>
</html>`

const bookingEmailTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <style>` + emailStyles + `</style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h2>🧁 New Workshop Enquiry</h2>
      <p style="margin: 10px 0 0 0; font-size: 16px; color: #1F2937;">Baked by Ann</p>
    </div>
    <div class="content">
      <div class="field">
        <div class="label">Customer Name</div>
        <div class="value">{{.Name}}</div>
      </div>

      <div class="field">
        <div class="label">Email Address</div>
        <div class="value"><a href="mailto:{{.Email}}" style="color: #1F2937; text-decoration: none;">{{.Email}}</a></div>
      </div>

      {{if .Phone}}<div class="field">
        <div class="label">Phone</div>
        <div class="value">{{.Phone}}</div>
      </div>{{end}}

      <div class="field highlight">
        <div class="label">Workshop Type</div>
        <div class="value" style="font-size: 20px; font-weight: bold; color: #1F2937;">{{.WorkshopType}}</div>
      </div>

      <div class="field">
        <div class="label">Location</div>
        <div class="value">{{.Location}}</div>
      </div>

      <div class="field">
        <div class="label">Preferred Date</div>
        <div class="value">{{.PreferredDate}}</div>
      </div>

      <div class="field">
        <div class="label">Group Size</div>
        <div class="value">{{.GroupSize}} people</div>
      </div>

      {{if .AdditionalDetails}}<div class="field">
        <div class="label">Additional Details</div>
        <div class="value">{{.AdditionalDetails}}</div>
      </div>{{end}}
    </div>
    <div class="footer">
      <p>Submitted on {{.SubmittedAt}}</p>
      <p style="margin-top: 10px;">Reply directly to this email to contact the customer.</p>
    </div>
  </div>
</body>
</html>`

const feedbackEmailTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <style>` + emailStyles + `</style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h2>📋 Class Feedback Received</h2>
      <p style="margin: 10px 0 0 0; font-size: 18px; font-weight: bold; color: #1F2937;">{{.FormattedDate}}</p>
    </div>
    <div class="content">
      <div class="highlight">
        <div class="field">
          <div class="label">Overall Satisfaction</div>
          <div class="value">
            <span class="stars">{{.OverallStars}}</span>
            <span style="margin-left: 10px; color: #1F2937; font-size: 18px;">{{.OverallSatisfaction}}/5</span>
          </div>
        </div>
        <div class="field">
          <div class="label">Recommendation Likelihood</div>
          <div class="value">
            <span class="stars">{{.RecommendationStars}}</span>
            <span style="margin-left: 10px; color: #1F2937; font-size: 18px;">{{.RecommendationLikelihood}}/5</span>
          </div>
        </div>
      </div>

      <div class="field">
        <div class="label">What They Enjoyed Most</div>
        <div class="value">{{.EnjoyedMost}}</div>
      </div>

      <div class="field">
        <div class="label">Suggested Improvements</div>
        <div class="value">{{.Improvements}}</div>
      </div>
    </div>
    <div class="footer">
      <p>Submitted on {{.SubmittedAt}}</p>
      <p style="margin-top: 10px; font-style: italic;">This feedback was submitted anonymously</p>
    </div>
  </div>
</body>
</html>`
