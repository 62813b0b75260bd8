package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"nnx1/internal/catalog"
	"nnx1/internal/config"
	"nnx1/internal/diagnostic"
	"nnx1/internal/model"
	"nnx1/internal/report"
	"nnx1/internal/repository"
	"nnx1/pkg/logger"
	"nnx1/pkg/metrics"
)

// DeliveryService emails rendered reports, with a PDF copy when one can be
// printed in time
type DeliveryService struct {
	mailer      Mailer
	pdf         PDFRenderer
	deliveries  repository.DeliveryRepo
	analytics   *AnalyticsService
	sessions    *SessionService
	cfg         config.DeliveryConfig
	log         logger.Logger
	broadcaster Broadcaster
	now         func() time.Time
}

// NewDeliveryService creates a delivery service. A nil mailer simulates every
// send and a nil renderer sends without attachments.
func NewDeliveryService(
	mailer Mailer,
	pdf PDFRenderer,
	deliveries repository.DeliveryRepo,
	analytics *AnalyticsService,
	sessions *SessionService,
	cfg config.DeliveryConfig,
	log logger.Logger,
) *DeliveryService {
	return &DeliveryService{
		mailer:     mailer,
		pdf:        pdf,
		deliveries: deliveries,
		analytics:  analytics,
		sessions:   sessions,
		cfg:        cfg,
		log:        log.Named("delivery"),
		now:        time.Now,
	}
}

// SetBroadcaster sets the broadcaster for delivery status events
func (s *DeliveryService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// delivery is a validated request
type delivery struct {
	sessionID string
	to        string
	name      string
	tool      model.ToolID
	content   string
	score     int
	answers   []model.Answer
}

func validateDelivery(req *model.DeliveryRequest) (*delivery, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: empty request", ErrInvalidInput)
	}
	addr, err := mail.ParseAddress(strings.TrimSpace(req.To))
	if err != nil {
		return nil, fmt.Errorf("%w: recipient: %w", ErrInvalidInput, err)
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	tool, err := model.ParseTool(req.Tool)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if strings.TrimSpace(req.ReportContent) == "" {
		return nil, fmt.Errorf("%w: report content is required", ErrInvalidInput)
	}
	if req.Score == nil {
		return nil, fmt.Errorf("%w: score is required", ErrInvalidInput)
	}
	if len(req.Answers) != catalog.QuestionsPerTool {
		return nil, fmt.Errorf("%w: expected %d answers, got %d", ErrInvalidInput, catalog.QuestionsPerTool, len(req.Answers))
	}
	for i, a := range req.Answers {
		if !a.Answer.Valid() {
			return nil, fmt.Errorf("%w: answer %d is %q", ErrInvalidInput, i, a.Answer)
		}
	}
	score, err := diagnostic.ComputeScore(req.Answers)
	if err != nil {
		return nil, err
	}
	if score != *req.Score {
		return nil, fmt.Errorf("%w: score %d does not match answers (%d)", ErrInvalidInput, *req.Score, score)
	}

	return &delivery{
		sessionID: req.SessionID,
		to:        addr.Address,
		name:      name,
		tool:      tool,
		content:   req.ReportContent,
		score:     score,
		answers:   req.Answers,
	}, nil
}

// Send validates the request and emails the report. Only validation problems
// are returned as errors; delivery problems come back as a failed result.
func (s *DeliveryService) Send(ctx context.Context, req *model.DeliveryRequest) (model.DeliveryResult, error) {
	d, err := validateDelivery(req)
	if err == nil && d.sessionID != "" {
		err = s.checkSession(ctx, d)
	}
	if err != nil {
		return model.DeliveryResult{Success: false, Message: err.Error()}, err
	}

	rec := &model.DeliveryRecord{
		SessionID: d.sessionID,
		To:        d.to,
		Tool:      d.tool,
		Score:     d.score,
		Status:    model.DeliveryRendering,
	}
	if err := s.deliveries.Create(ctx, rec); err != nil {
		s.log.Warn(ctx, "delivery log write failed", logger.Error(err))
	}
	s.publish(ctx, rec, model.DeliveryRendering, "Preparing your report", false)

	result := s.deliver(ctx, d, rec)

	status := model.DeliverySent
	switch {
	case result.Simulated:
		status = model.DeliverySimulated
	case !result.Success:
		status = model.DeliveryFailed
	}
	metrics.RecordDelivery(string(status))
	s.publish(ctx, rec, status, result.Message, result.PDFAttached)

	if result.Success && d.sessionID != "" && s.sessions != nil {
		if _, err := s.sessions.MarkEmailSubmitted(ctx, d.sessionID); err != nil && !errors.Is(err, ErrSessionNotFound) {
			s.log.Warn(ctx, "email milestone update failed", logger.String("sessionId", d.sessionID), logger.Error(err))
		}
	}

	s.log.Info(ctx, "report delivery finished",
		logger.String("deliveryId", rec.ID),
		logger.String("tool", string(d.tool)),
		logger.String("status", string(status)),
		logger.Bool("pdfAttached", result.PDFAttached))
	return result, nil
}

// checkSession refuses a session id whose stored tool and answers differ from
// the request, so a report can only update the session it was built from
func (s *DeliveryService) checkSession(ctx context.Context, d *delivery) error {
	if s.sessions == nil {
		return fmt.Errorf("%w: sessions are not tracked", ErrInvalidInput)
	}
	session, err := s.sessions.Get(ctx, d.sessionID)
	if errors.Is(err, ErrSessionNotFound) {
		return fmt.Errorf("%w: unknown session", ErrInvalidInput)
	}
	if err != nil {
		return err
	}
	if session.Tool != d.tool {
		return fmt.Errorf("%w: session is for %s", ErrInvalidInput, session.Tool)
	}
	if len(session.Answers) != len(d.answers) {
		return fmt.Errorf("%w: session has %d answers", ErrInvalidInput, len(session.Answers))
	}
	for i, a := range session.Answers {
		if a.QuestionID != d.answers[i].QuestionID || a.Answer != d.answers[i].Answer {
			return fmt.Errorf("%w: answer %d does not match session", ErrInvalidInput, i)
		}
	}
	return nil
}

func (s *DeliveryService) deliver(ctx context.Context, d *delivery, rec *model.DeliveryRecord) model.DeliveryResult {
	if s.mailer == nil {
		return model.DeliveryResult{
			Success:   true,
			Message:   "Email simulated (no API key configured)",
			Simulated: true,
		}
	}

	var attachments []Attachment
	if pdf := s.renderPDF(ctx, d); pdf != nil {
		attachments = append(attachments, Attachment{
			Filename:    fmt.Sprintf("NBLK-Diagnostic-Report-%d.pdf", s.now().UnixMilli()),
			ContentType: "application/pdf",
			Content:     pdf,
		})
	}
	withPDF := len(attachments) > 0

	html, err := report.EmailHTML(report.EmailInput{
		Name:    d.name,
		Tool:    d.tool,
		Score:   d.score,
		Content: d.content,
		WithPDF: withPDF,
	})
	if err != nil {
		s.log.Error(ctx, "email render failed", logger.Error(err))
		return model.DeliveryResult{Message: "Failed to render email"}
	}

	s.publish(ctx, rec, model.DeliverySending, "Sending your report", withPDF)
	sendCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()
	err = s.mailer.Send(sendCtx, Email{
		To:          d.to,
		ToName:      d.name,
		Subject:     s.cfg.Subject,
		HTML:        html,
		Attachments: attachments,
	})
	if err != nil {
		s.log.Warn(ctx, "email send failed", logger.String("tool", string(d.tool)), logger.Error(err))
		if errors.Is(sendCtx.Err(), context.DeadlineExceeded) {
			return model.DeliveryResult{Message: "Email delivery timed out. Please try again."}
		}
		return model.DeliveryResult{Message: "Failed to send email"}
	}

	msg := "Email sent successfully"
	if withPDF {
		msg = "Email sent successfully with professional PDF report"
	}
	return model.DeliveryResult{Success: true, Message: msg, PDFAttached: withPDF}
}

// renderPDF returns nil when the attachment cannot be produced
func (s *DeliveryService) renderPDF(ctx context.Context, d *delivery) []byte {
	if s.pdf == nil {
		return nil
	}

	var peerYes []float64
	if s.analytics != nil {
		percents, err := s.analytics.QuestionYesPercents(ctx, d.tool)
		if err != nil {
			s.log.Warn(ctx, "peer percentages unavailable", logger.String("tool", string(d.tool)), logger.Error(err))
		} else {
			peerYes = PeerYes(percents)
		}
	}

	page, err := report.PDFHTML(report.PDFInput{
		Input: report.Input{
			Name:    d.name,
			Tool:    d.tool,
			Score:   d.score,
			Answers: d.answers,
			Date:    s.now(),
		},
		PeerYes: peerYes,
	})
	if err == nil {
		pdfCtx, cancel := context.WithTimeout(ctx, s.cfg.PDFTimeout)
		defer cancel()
		var pdf []byte
		if pdf, err = s.pdf.Render(pdfCtx, page); err == nil {
			return pdf
		}
	}

	metrics.RecordPDFFailure()
	s.log.Warn(ctx, "pdf rendering failed, sending without attachment", logger.String("tool", string(d.tool)), logger.Error(err))
	return nil
}

// publish records the status and pushes it to session subscribers
func (s *DeliveryService) publish(ctx context.Context, rec *model.DeliveryRecord, status model.DeliveryStatus, message string, pdfAttached bool) {
	rec.Status = status
	rec.Message = message
	rec.PDFAttached = pdfAttached
	if status != model.DeliveryRendering {
		if err := s.deliveries.UpdateStatus(ctx, rec.ID, status, message, pdfAttached); err != nil {
			s.log.Warn(ctx, "delivery log update failed", logger.String("deliveryId", rec.ID), logger.Error(err))
		}
	}

	if s.broadcaster != nil && rec.SessionID != "" {
		s.broadcaster.BroadcastToSession(rec.SessionID, MsgDeliveryStatus, map[string]interface{}{
			"deliveryId":  rec.ID,
			"status":      status,
			"message":     message,
			"pdfAttached": pdfAttached,
		})
	}
}
