package booking

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/YelzhanWeb/goodplatters/internal/adapter/logger"
	"github.com/YelzhanWeb/goodplatters/internal/adapter/sqlite"
	"github.com/YelzhanWeb/goodplatters/internal/app/suggest"
	"github.com/YelzhanWeb/goodplatters/internal/domain"
	"github.com/YelzhanWeb/goodplatters/internal/interfaces"
)

type recordingPublisher struct {
	events []interfaces.SiteEvent
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, event interfaces.SiteEvent) error {
	p.events = append(p.events, event)
	return p.err
}

func setupTestService(t *testing.T, publisher interfaces.EventPublisher) *Service {
	t.Helper()
	store, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	log := logger.NewNop()
	return NewService(store, publisher, suggest.NewService(nil, log), log)
}

func validCommand() interfaces.SubmitReservationCommand {
	return interfaces.SubmitReservationCommand{
		Date:   "2025-08-14",
		Time:   "20:00",
		Guests: 3,
		Name:   "Linus",
		Email:  "linus@example.com",
		Phone:  "+1 (555) 010-2030",
	}
}

func TestSubmitReservationIsPendingWithFreshID(t *testing.T) {
	pub := &recordingPublisher{}
	svc := setupTestService(t, pub)
	ctx := context.Background()

	first, err := svc.SubmitReservation(ctx, validCommand())
	require.NoError(t, err)
	second, err := svc.SubmitReservation(ctx, validCommand())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, first.Status)
	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)

	list, err := svc.Reservations(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)

	require.Len(t, pub.events, 2)
	assert.Equal(t, interfaces.EventReservationCreated, pub.events[0].Type)
	assert.Equal(t, first.ID, pub.events[0].ReservationID)
	assert.Equal(t, 3, pub.events[0].Guests)
}

func TestSubmitReservationValidation(t *testing.T) {
	svc := setupTestService(t, nil)

	cmd := validCommand()
	cmd.Guests = 21
	cmd.Time = "8pm"
	cmd.Phone = "call me"

	_, err := svc.SubmitReservation(context.Background(), cmd)
	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	fields := make([]string, len(verrs))
	for i, fe := range verrs {
		fields[i] = fe.Field
	}
	assert.ElementsMatch(t, []string{"guests", "time", "phone"}, fields)

	list, err := svc.Reservations(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPublishFailureDoesNotFailSubmission(t *testing.T) {
	svc := setupTestService(t, &recordingPublisher{err: errors.New("broker down")})

	r, err := svc.SubmitReservation(context.Background(), validCommand())
	require.NoError(t, err)
	assert.NotEmpty(t, r.ID)
}

func TestUpdateReservationStatus(t *testing.T) {
	pub := &recordingPublisher{}
	svc := setupTestService(t, pub)
	ctx := context.Background()

	r, err := svc.SubmitReservation(ctx, validCommand())
	require.NoError(t, err)

	updated, err := svc.UpdateReservationStatus(ctx, r.ID, domain.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, updated.Status)
	assert.Equal(t, r.Name, updated.Name)
	assert.Equal(t, r.Date, updated.Date)
	assert.Equal(t, r.Guests, updated.Guests)
	assert.Equal(t, r.Email, updated.Email)

	require.Len(t, pub.events, 2)
	assert.Equal(t, interfaces.EventReservationStatusChanged, pub.events[1].Type)
	assert.Equal(t, domain.StatusPending, pub.events[1].OldStatus)

	// re-applying the same status is a no-op
	_, err = svc.UpdateReservationStatus(ctx, r.ID, domain.StatusCancelled)
	require.NoError(t, err)
	assert.Len(t, pub.events, 2)

	_, err = svc.UpdateReservationStatus(ctx, r.ID, domain.StatusConfirmed)
	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)

	_, err = svc.UpdateReservationStatus(ctx, "missing", domain.StatusConfirmed)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.UpdateReservationStatus(ctx, r.ID, domain.ReservationStatus("DONE"))
	var verrs domain.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestPutReservationReplacesByID(t *testing.T) {
	svc := setupTestService(t, nil)
	ctx := context.Background()

	r := domain.DefaultReservations()[0]
	require.NoError(t, svc.PutReservation(ctx, r))

	r.Guests = 6
	require.NoError(t, svc.PutReservation(ctx, r))

	list, err := svc.Reservations(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 6, list[0].Guests)
}

func TestInquiries(t *testing.T) {
	pub := &recordingPublisher{}
	svc := setupTestService(t, pub)
	ctx := context.Background()

	inq, err := svc.SubmitInquiry(ctx, interfaces.SubmitInquiryCommand{
		Name: "Margaret", Email: "margaret@example.com", Subject: "Allergies", Message: "Is the risotto nut free?",
	})
	require.NoError(t, err)
	require.Len(t, pub.events, 1)
	assert.Equal(t, interfaces.EventInquiryCreated, pub.events[0].Type)
	assert.Equal(t, "Allergies", pub.events[0].Subject)

	reply, err := svc.SuggestInquiryReply(ctx, inq.ID)
	require.NoError(t, err)
	assert.Equal(t, suggest.FallbackInquiryReply, reply)

	_, err = svc.SuggestInquiryReply(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, svc.DeleteInquiry(ctx, inq.ID))
	require.NoError(t, svc.DeleteInquiry(ctx, inq.ID))

	list, err := svc.Inquiries(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = svc.SubmitInquiry(ctx, interfaces.SubmitInquiryCommand{Name: "M", Email: "bad", Subject: "", Message: ""})
	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 3)
}

type promptRecorder struct {
	prompt string
}

func (g *promptRecorder) Generate(ctx context.Context, prompt string) (string, error) {
	g.prompt = prompt
	return "We would be glad to help.", nil
}

func TestSuggestInquiryReplyUsesBrandName(t *testing.T) {
	store, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	log := logger.NewNop()
	gen := &promptRecorder{}
	svc := NewService(store, nil, suggest.NewService(gen, log), log)

	inq, err := svc.SubmitInquiry(ctx, interfaces.SubmitInquiryCommand{
		Name: "Ada", Email: "ada@example.com", Subject: "Party", Message: "Do you host birthdays?",
	})
	require.NoError(t, err)

	_, err = svc.SuggestInquiryReply(ctx, inq.ID)
	require.NoError(t, err)
	assert.Contains(t, gen.prompt, `"Good Platters"`)

	settings := domain.DefaultSettings()
	settings.BrandName = "Chez Nous"
	require.NoError(t, store.Settings().Save(ctx, settings))

	reply, err := svc.SuggestInquiryReply(ctx, inq.ID)
	require.NoError(t, err)
	assert.Equal(t, "We would be glad to help.", reply)
	assert.Contains(t, gen.prompt, `"Chez Nous"`)
	assert.Contains(t, gen.prompt, "Ada")
}

func TestDashboard(t *testing.T) {
	svc := setupTestService(t, nil)
	ctx := context.Background()

	r, err := svc.SubmitReservation(ctx, validCommand())
	require.NoError(t, err)
	_, err = svc.SubmitReservation(ctx, validCommand())
	require.NoError(t, err)
	_, err = svc.UpdateReservationStatus(ctx, r.ID, domain.StatusConfirmed)
	require.NoError(t, err)

	stats, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Reservations)
	assert.Equal(t, 1, stats.PendingReservations)
	assert.Equal(t, 0, stats.Inquiries)
}

func TestExportReservations(t *testing.T) {
	svc := setupTestService(t, nil)
	ctx := context.Background()

	r, err := svc.SubmitReservation(ctx, validCommand())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportReservations(ctx, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, r.ID, rows[1][0])
	assert.Equal(t, "PENDING", rows[1][7])
}
