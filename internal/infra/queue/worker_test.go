package queue

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/kelechv1/edulead-crm/internal/entity"
	"github.com/kelechv1/edulead-crm/internal/usecase"
)

// MockDispatcher
type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Execute(ctx context.Context, input usecase.DispatchInput) (*usecase.DispatchReport, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.DispatchReport), args.Error(1)
}

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Upsert(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) UpdateStage(ctx context.Context, id, stage string) error {
	args := m.Called(ctx, id, stage)
	return args.Error(0)
}

func (m *MockLeadRepository) ListByStage(ctx context.Context, stage string) ([]*entity.Lead, error) {
	args := m.Called(ctx, stage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

// MockAgentRepository
type MockAgentRepository struct {
	mock.Mock
}

func (m *MockAgentRepository) FindByID(ctx context.Context, id string) (*entity.Agent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Agent), args.Error(1)
}

// MockTemplateRepository
type MockTemplateRepository struct {
	mock.Mock
}

func (m *MockTemplateRepository) Create(ctx context.Context, tpl *entity.MessageTemplate) error {
	args := m.Called(ctx, tpl)
	return args.Error(0)
}

func (m *MockTemplateRepository) FindByID(ctx context.Context, id string) (*entity.MessageTemplate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.MessageTemplate), args.Error(1)
}

func (m *MockTemplateRepository) List(ctx context.Context) ([]*entity.MessageTemplate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.MessageTemplate), args.Error(1)
}

// ============ TESTS ============

func TestProcessJobLoadsRecordsAndDispatches(t *testing.T) {
	ctx := context.Background()

	dispatcher := new(MockDispatcher)
	leads := new(MockLeadRepository)
	agents := new(MockAgentRepository)
	templates := new(MockTemplateRepository)

	lead := &entity.Lead{ID: "L1", Email: "x@y.com"}
	agent := &entity.Agent{ID: "A1", Name: "Bob"}
	tpl := &entity.MessageTemplate{ID: "T1", EmailHTML: "hi"}

	leads.On("FindByID", ctx, "L1").Return(lead, nil)
	agents.On("FindByID", ctx, "A1").Return(agent, nil)
	templates.On("FindByID", ctx, "T1").Return(tpl, nil)
	dispatcher.On("Execute", ctx, mock.MatchedBy(func(input usecase.DispatchInput) bool {
		return input.Lead == lead && input.Agent == agent && input.Template == tpl &&
			input.UserID == "U1" && input.FromStage == "NEW" && input.ToStage == "CONTACTED"
	})).Return(&usecase.DispatchReport{}, nil)

	w := NewWorker(nil, dispatcher, leads, agents, templates)
	err := w.processJob(ctx, DispatchPayload{
		LeadID:     "L1",
		TemplateID: "T1",
		AgentID:    "A1",
		UserID:     "U1",
		FromStage:  "NEW",
		ToStage:    "CONTACTED",
	})

	assert.NoError(t, err)
	dispatcher.AssertExpectations(t)
}

func TestProcessJobMissingAgentDispatchesWithoutAgent(t *testing.T) {
	ctx := context.Background()

	dispatcher := new(MockDispatcher)
	leads := new(MockLeadRepository)
	agents := new(MockAgentRepository)
	templates := new(MockTemplateRepository)

	leads.On("FindByID", ctx, "L1").Return(&entity.Lead{ID: "L1"}, nil)
	templates.On("FindByID", ctx, "T1").Return(&entity.MessageTemplate{ID: "T1"}, nil)
	agents.On("FindByID", ctx, "A1").Return(nil, sql.ErrNoRows)
	dispatcher.On("Execute", ctx, mock.MatchedBy(func(input usecase.DispatchInput) bool {
		return input.Agent == nil
	})).Return(&usecase.DispatchReport{}, nil)

	w := NewWorker(nil, dispatcher, leads, agents, templates)
	err := w.processJob(ctx, DispatchPayload{LeadID: "L1", TemplateID: "T1", AgentID: "A1"})

	assert.NoError(t, err)
	dispatcher.AssertExpectations(t)
}

func TestProcessJobLeadLookupFailureBubblesUp(t *testing.T) {
	ctx := context.Background()

	dispatcher := new(MockDispatcher)
	leads := new(MockLeadRepository)
	agents := new(MockAgentRepository)
	templates := new(MockTemplateRepository)

	leads.On("FindByID", ctx, "L1").Return(nil, errors.New("db down"))

	w := NewWorker(nil, dispatcher, leads, agents, templates)
	err := w.processJob(ctx, DispatchPayload{LeadID: "L1", TemplateID: "T1"})

	assert.Error(t, err)
	dispatcher.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestProcessJobDispatchErrorBubblesUp(t *testing.T) {
	ctx := context.Background()

	dispatcher := new(MockDispatcher)
	leads := new(MockLeadRepository)
	agents := new(MockAgentRepository)
	templates := new(MockTemplateRepository)

	leads.On("FindByID", ctx, "L1").Return(&entity.Lead{ID: "L1"}, nil)
	templates.On("FindByID", ctx, "T1").Return(&entity.MessageTemplate{ID: "T1"}, nil)
	dispatcher.On("Execute", ctx, mock.Anything).Return(nil, errors.New("history write failed"))

	w := NewWorker(nil, dispatcher, leads, agents, templates)
	err := w.processJob(ctx, DispatchPayload{LeadID: "L1", TemplateID: "T1"})

	assert.Error(t, err)
}
