package suggest

import (
	"context"
	"fmt"
	"strings"

	"github.com/YelzhanWeb/goodplatters/internal/adapter/logger"
	"github.com/YelzhanWeb/goodplatters/internal/interfaces"
)

const (
	EmptyMenuDescription    = "Delicious chef-crafted dish."
	FallbackMenuDescription = "An exquisite culinary creation."
	EmptyInquiryReply       = "Thank you for reaching out!"
	FallbackInquiryReply    = "Thank you for your feedback. We look forward to serving you again!"
)

// Service asks the text generator for copy and never fails: any problem is
// replaced with a fixed fallback string.
type Service struct {
	generator interfaces.TextGenerator
	logger    logger.Logger
}

// NewService accepts a nil generator, in which case every call falls back.
func NewService(generator interfaces.TextGenerator, logger logger.Logger) *Service {
	return &Service{
		generator: generator,
		logger:    logger,
	}
}

func (s *Service) MenuDescription(ctx context.Context, name, category string) string {
	prompt := fmt.Sprintf(
		"Write a appetizing and concise 2-sentence description for a restaurant menu item called %q in the %q category.",
		name, category,
	)
	return s.generate(ctx, "menu_description", prompt, EmptyMenuDescription, FallbackMenuDescription)
}

// InquiryReply drafts a reply signed off as the manager of brandName.
func (s *Service) InquiryReply(ctx context.Context, brandName, customerName, message string) string {
	prompt := fmt.Sprintf(
		"As the manager of %q, write a friendly and professional response to this customer message from %s: %q",
		brandName, customerName, message,
	)
	return s.generate(ctx, "inquiry_reply", prompt, EmptyInquiryReply, FallbackInquiryReply)
}

func (s *Service) generate(ctx context.Context, kind, prompt, empty, fallback string) string {
	if s.generator == nil {
		return fallback
	}

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.Error("suggestion_failed", "Text generation failed, using fallback", "", map[string]interface{}{
			"kind": kind,
		}, err)
		return fallback
	}

	if text = strings.TrimSpace(text); text == "" {
		return empty
	}
	return text
}
