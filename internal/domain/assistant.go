package domain

import (
	"context"
	"strings"
	"time"

	"github.com/vriksha-lab/backend/internal/domain/insight"
	"github.com/vriksha-lab/backend/internal/model"
	"github.com/vriksha-lab/backend/pkg/errorx"
)

type AssistantDomain interface {
	Chat(context.Context, *model.ChatRequest) (*model.ChatResponse, error)
}

type assistantDomain struct {
	assistant insight.Assistant
}

func NewAssistantDomain(assistant insight.Assistant) *assistantDomain {
	return &assistantDomain{assistant: assistant}
}

func (d *assistantDomain) Chat(
	ctx context.Context, req *model.ChatRequest,
) (*model.ChatResponse, error) {
	if strings.TrimSpace(req.Text) == "" && req.ImageURL == "" {
		return nil, errorx.New(errorx.BadRequest, "Require a question or an image")
	}

	start := time.Now()
	reply, err := d.assistant.Chat(ctx, req.Text, req.ImageURL)
	observeAI("chat", start)
	if err != nil {
		return nil, domainError(ctx, "chat", err)
	}

	return &model.ChatResponse{Reply: reply}, nil
}
