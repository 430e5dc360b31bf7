package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/zimmr_backend/internal/apperrors"
	"github.com/SscSPs/zimmr_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/zimmr_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/zimmr_backend/internal/core/ports/services"
	"github.com/SscSPs/zimmr_backend/internal/core/services"
	"github.com/SscSPs/zimmr_backend/internal/dto"
	"github.com/SscSPs/zimmr_backend/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TimeEntryServiceTestSuite struct {
	suite.Suite
	repo         *MockTimeEntryRepository
	customerRepo *MockCustomerRepository
	apptRepo     *MockAppointmentRepository
	authorizer   *MockAuthorizer
	service      portssvc.TimeEntrySvcFacade

	ctx         context.Context
	userID      string
	craftsmanID string
}

func (suite *TimeEntryServiceTestSuite) SetupTest() {
	suite.repo = new(MockTimeEntryRepository)
	suite.customerRepo = new(MockCustomerRepository)
	suite.apptRepo = new(MockAppointmentRepository)
	suite.authorizer = new(MockAuthorizer)
	suite.service = services.NewTimeEntryService(suite.repo, suite.customerRepo, suite.apptRepo, suite.authorizer)

	suite.ctx = context.Background()
	suite.userID = uuid.NewString()
	suite.craftsmanID = uuid.NewString()
	suite.authorizer.On("ResolveCraftsmanScope", mock.Anything, suite.userID, "").Return(suite.craftsmanID, nil).Maybe()
}

func TestTimeEntryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TimeEntryServiceTestSuite))
}

func (suite *TimeEntryServiceTestSuite) TestCreateTimeEntry_ComputesDuration() {
	start := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	end := start.Add(4*time.Hour + 30*time.Minute)
	rate := decimal.NewFromInt(60)
	req := dto.CreateTimeEntryRequest{StartTime: start, EndTime: &end, BreakMinutes: 30, HourlyRate: &rate}
	suite.repo.On("SaveTimeEntry", suite.ctx, mock.AnythingOfType("domain.TimeEntry")).Return(nil).Once()

	entry, err := suite.service.CreateTimeEntry(suite.ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry.DurationMinutes)
	suite.Equal(240, *entry.DurationMinutes)
	suite.True(entry.IsBillable)
	suite.True(entry.BillableAmount().Equal(decimal.NewFromInt(240)))
	suite.repo.AssertNotCalled(suite.T(), "FindRunningTimeEntry", mock.Anything, mock.Anything)
}

func (suite *TimeEntryServiceTestSuite) TestCreateTimeEntry_EndBeforeStart() {
	start := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	end := start.Add(-time.Hour)

	_, err := suite.service.CreateTimeEntry(suite.ctx, dto.CreateTimeEntryRequest{StartTime: start, EndTime: &end}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.repo.AssertNotCalled(suite.T(), "SaveTimeEntry", mock.Anything, mock.Anything)
}

func (suite *TimeEntryServiceTestSuite) TestCreateTimeEntry_SecondRunningTimer() {
	running := &domain.TimeEntry{TimeEntryID: uuid.NewString(), CraftsmanID: suite.craftsmanID}
	suite.repo.On("FindRunningTimeEntry", suite.ctx, suite.craftsmanID).Return(running, nil).Once()

	_, err := suite.service.CreateTimeEntry(suite.ctx, dto.CreateTimeEntryRequest{StartTime: time.Now()}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.repo.AssertNotCalled(suite.T(), "SaveTimeEntry", mock.Anything, mock.Anything)
}

func (suite *TimeEntryServiceTestSuite) TestCreateTimeEntry_FillsCustomerFromAppointment() {
	appt := &domain.Appointment{AppointmentID: uuid.NewString(), CraftsmanID: suite.craftsmanID, CustomerID: uuid.NewString()}
	start := time.Now().Add(-time.Hour)
	end := time.Now()
	suite.apptRepo.On("FindAppointmentByID", suite.ctx, appt.AppointmentID).Return(appt, nil).Once()
	suite.repo.On("SaveTimeEntry", suite.ctx, mock.Anything).Return(nil).Once()

	entry, err := suite.service.CreateTimeEntry(suite.ctx, dto.CreateTimeEntryRequest{
		AppointmentID: &appt.AppointmentID,
		StartTime:     start,
		EndTime:       &end,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry.CustomerID)
	suite.Equal(appt.CustomerID, *entry.CustomerID)
}

func (suite *TimeEntryServiceTestSuite) TestListTimeEntries_Paginates() {
	base := time.Date(2026, 6, 10, 8, 0, 0, 0, time.UTC)
	entries := []domain.TimeEntry{
		{TimeEntryID: "c", StartTime: base.Add(2 * time.Hour)},
		{TimeEntryID: "b", StartTime: base.Add(time.Hour)},
		{TimeEntryID: "a", StartTime: base},
	}
	suite.repo.On("ListTimeEntries", suite.ctx, suite.craftsmanID, mock.MatchedBy(func(f portsrepo.TimeEntryListFilter) bool {
		return f.Limit == 3 && f.AfterStart == nil
	})).Return(entries, nil).Once()

	page, next, err := suite.service.ListTimeEntries(suite.ctx, dto.ListTimeEntriesParams{Limit: 2}, suite.userID)

	suite.Require().NoError(err)
	suite.Len(page, 2)
	suite.Require().NotNil(next)
	cursor, err := pagination.DecodeToken(*next)
	suite.Require().NoError(err)
	suite.Equal("b", cursor.ID)
	suite.True(cursor.At.Equal(base.Add(time.Hour)))
}

func (suite *TimeEntryServiceTestSuite) TestListTimeEntries_InvalidToken() {
	_, _, err := suite.service.ListTimeEntries(suite.ctx, dto.ListTimeEntriesParams{Limit: 10, NextToken: "!!not-a-token"}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TimeEntryServiceTestSuite) TestUpdateTimeEntry_StopsTimer() {
	start := time.Now().Add(-2 * time.Hour).UTC()
	running := &domain.TimeEntry{TimeEntryID: uuid.NewString(), CraftsmanID: suite.craftsmanID, StartTime: start, IsBillable: true}
	end := start.Add(90 * time.Minute)
	suite.repo.On("FindTimeEntryByID", suite.ctx, running.TimeEntryID).Return(running, nil).Once()
	suite.authorizer.On("AuthorizeCraftsmanAccess", suite.ctx, suite.userID, suite.craftsmanID).Return(nil).Once()
	suite.repo.On("UpdateTimeEntry", suite.ctx, mock.Anything).Return(nil).Once()

	entry, err := suite.service.UpdateTimeEntry(suite.ctx, running.TimeEntryID, dto.UpdateTimeEntryRequest{EndTime: &end}, suite.userID)

	suite.Require().NoError(err)
	suite.False(entry.IsRunning())
	suite.Equal(90, *entry.DurationMinutes)
}
