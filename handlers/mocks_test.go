package handlers

import (
	"context"

	"github.com/bakedbyann/bakery-backend/config"
	"github.com/bakedbyann/bakery-backend/types"
	"github.com/stretchr/testify/mock"
)

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, msg *types.EmailMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func testEmailConfig() *config.EmailConfig {
	return &config.EmailConfig{
		FromAddress: "onboarding@resend.dev",
		FromName:    "Baked by Ann",
		Recipient:   "ann@example.com",
	}
}
