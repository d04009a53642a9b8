package entries

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/bytebank-server/internal/entry"
	"github.com/carson-networks/bytebank-server/internal/logging"
)

// CreateEntryBody carries the field edits of one entry screen. Fields are
// optional so the ordered validation, not schema validation, reports what is
// missing.
type CreateEntryBody struct {
	Category    string `json:"category,omitempty" doc:"Category id from /v1/categories/{kind}"`
	Amount      string `json:"amount,omitempty" doc:"Amount keystrokes; digits are read as cents, so 1250 means 12.50"`
	Description string `json:"description,omitempty" doc:"Free-text label, 1-100 characters after trimming"`
	Date        string `json:"date,omitempty" doc:"RFC3339 transaction date, defaults to now"`
}

// CreateEntryInput is the Huma input for an entry submission.
type CreateEntryInput struct {
	Body CreateEntryBody
}

// CreateEntryResponse is the acknowledgment shown to the user.
type CreateEntryResponse struct {
	Title        string `json:"title" doc:"Acknowledgment title"`
	Message      string `json:"message" doc:"Acknowledgment message"`
	NavigateBack bool   `json:"navigateBack" doc:"Whether the client should return to the previous view"`
}

// CreateEntryOutput is the Huma output for an entry submission.
type CreateEntryOutput struct {
	Status int `json:"status" doc:"HTTP status"`
	Body   CreateEntryResponse
}

// CreateEntryHandler handles POST /v1/expense and POST /v1/income. One
// handler is registered per kind.
type CreateEntryHandler struct {
	config   entry.KindConfig
	sessions entry.SessionProvider
	creator  entry.TransactionCreator
	logger   logrus.FieldLogger
	now      func() time.Time
}

// NewCreateEntryHandler creates a handler for the given kind.
func NewCreateEntryHandler(cfg entry.KindConfig, sessions entry.SessionProvider, creator entry.TransactionCreator, logger logrus.FieldLogger) *CreateEntryHandler {
	return &CreateEntryHandler{
		config:   cfg,
		sessions: sessions,
		creator:  creator,
		logger:   logger,
		now:      time.Now,
	}
}

// Register registers the entry endpoint with the Huma API.
func (h *CreateEntryHandler) Register(api huma.API) {
	kind := string(h.config.Kind)
	huma.Register(api, huma.Operation{
		OperationID:   "create-" + kind,
		Method:        http.MethodPost,
		Path:          "/v1/" + kind,
		Summary:       "Record " + kind,
		Description:   "Validates and records a new " + kind + " for the authenticated user.",
		Tags:          []string{"Entries"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

// surface collects what the workflow tells the user during one request.
type surface struct {
	mu           sync.Mutex
	notification *entry.Notification
	navigateBack bool
}

func (s *surface) Notify(ctx context.Context, n entry.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notification = &n
}

func (s *surface) GoBack(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.navigateBack = true
}

func (h *CreateEntryHandler) handle(ctx context.Context, input *CreateEntryInput) (*CreateEntryOutput, error) {
	var date time.Time
	if input.Body.Date != "" {
		parsed, err := time.Parse(time.RFC3339, input.Body.Date)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid date", err)
		}
		date = parsed
	}

	logData := logging.GetLogData(ctx)
	if logData != nil {
		logData.AddData("kind", h.config.Kind)
	}

	s := &surface{}
	form := entry.NewForm(h.config, entry.Dependencies{
		Sessions:  h.sessions,
		Creator:   h.creator,
		Notifier:  s,
		Navigator: s,
		Logger:    h.logger,
	}, h.now())

	err := form.Edit(func(d *entry.Draft) {
		d.SelectCategory(input.Body.Category)
		d.EditAmount(input.Body.Amount)
		d.EditDescription(input.Body.Description)
		if !date.IsZero() {
			d.SetDate(date)
		}
	})
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, h.config.FailureMessage)
	}

	err = form.Submit(ctx)

	var verr *entry.ValidationError
	var perr *entry.PersistenceError
	switch {
	case errors.As(err, &verr):
		if logData != nil {
			logData.AddData("validationRule", verr.Rule)
		}
		if verr.Rule == entry.RuleSession {
			return nil, huma.NewError(http.StatusUnauthorized, verr.Message)
		}
		return nil, huma.NewError(http.StatusBadRequest, verr.Message)
	case errors.As(err, &perr):
		return nil, huma.NewError(http.StatusInternalServerError, h.config.FailureMessage)
	case err != nil:
		return nil, huma.NewError(http.StatusInternalServerError, h.config.FailureMessage)
	}

	n := s.notification
	if n == nil {
		return nil, huma.NewError(http.StatusInternalServerError, h.config.FailureMessage)
	}
	if n.OnDismiss != nil {
		// the HTTP response is the acknowledgment
		n.OnDismiss()
	}

	return &CreateEntryOutput{
		Status: http.StatusCreated,
		Body: CreateEntryResponse{
			Title:        n.Title,
			Message:      n.Message,
			NavigateBack: s.navigateBack,
		},
	}, nil
}
