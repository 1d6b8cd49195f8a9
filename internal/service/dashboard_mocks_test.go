// Hand-written gomock double for DashboardSource, laid out the way mockgen
// emits one.

package service_test

import (
	context "context"
	reflect "reflect"

	api "github.com/madDev-12/fitnutrition/internal/api"
	model "github.com/madDev-12/fitnutrition/internal/model"
	gomock "go.uber.org/mock/gomock"
)

// MockDashboardSource is a mock of DashboardSource interface.
type MockDashboardSource struct {
	ctrl     *gomock.Controller
	recorder *MockDashboardSourceMockRecorder
	isgomock struct{}
}

// MockDashboardSourceMockRecorder is the mock recorder for MockDashboardSource.
type MockDashboardSourceMockRecorder struct {
	mock *MockDashboardSource
}

// NewMockDashboardSource creates a new mock instance.
func NewMockDashboardSource(ctrl *gomock.Controller) *MockDashboardSource {
	mock := &MockDashboardSource{ctrl: ctrl}
	mock.recorder = &MockDashboardSourceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockDashboardSource) EXPECT() *MockDashboardSourceMockRecorder {
	return m.recorder
}

// Dashboard mocks base method.
func (m *MockDashboardSource) Dashboard(ctx context.Context) (model.Dashboard, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Dashboard", ctx)
	ret0, _ := ret[0].(model.Dashboard)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Dashboard indicates an expected call of Dashboard.
func (mr *MockDashboardSourceMockRecorder) Dashboard(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Dashboard", reflect.TypeOf((*MockDashboardSource)(nil).Dashboard), ctx)
}

// LatestMeasurement mocks base method.
func (m *MockDashboardSource) LatestMeasurement(ctx context.Context) (model.Measurement, bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "LatestMeasurement", ctx)
	ret0, _ := ret[0].(model.Measurement)
	ret1, _ := ret[1].(bool)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// LatestMeasurement indicates an expected call of LatestMeasurement.
func (mr *MockDashboardSourceMockRecorder) LatestMeasurement(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "LatestMeasurement", reflect.TypeOf((*MockDashboardSource)(nil).LatestMeasurement), ctx)
}

// ListMealPlans mocks base method.
func (m *MockDashboardSource) ListMealPlans(ctx context.Context) ([]model.MealPlan, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListMealPlans", ctx)
	ret0, _ := ret[0].([]model.MealPlan)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListMealPlans indicates an expected call of ListMealPlans.
func (mr *MockDashboardSourceMockRecorder) ListMealPlans(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListMealPlans", reflect.TypeOf((*MockDashboardSource)(nil).ListMealPlans), ctx)
}

// ListMeals mocks base method.
func (m *MockDashboardSource) ListMeals(ctx context.Context, q api.MealQuery) ([]model.Meal, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListMeals", ctx, q)
	ret0, _ := ret[0].([]model.Meal)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListMeals indicates an expected call of ListMeals.
func (mr *MockDashboardSourceMockRecorder) ListMeals(ctx any, q any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListMeals", reflect.TypeOf((*MockDashboardSource)(nil).ListMeals), ctx, q)
}

// ListWorkouts mocks base method.
func (m *MockDashboardSource) ListWorkouts(ctx context.Context) ([]model.Workout, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListWorkouts", ctx)
	ret0, _ := ret[0].([]model.Workout)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListWorkouts indicates an expected call of ListWorkouts.
func (mr *MockDashboardSourceMockRecorder) ListWorkouts(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListWorkouts", reflect.TypeOf((*MockDashboardSource)(nil).ListWorkouts), ctx)
}

// ThisWeekWorkouts mocks base method.
func (m *MockDashboardSource) ThisWeekWorkouts(ctx context.Context) ([]model.Workout, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ThisWeekWorkouts", ctx)
	ret0, _ := ret[0].([]model.Workout)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ThisWeekWorkouts indicates an expected call of ThisWeekWorkouts.
func (mr *MockDashboardSourceMockRecorder) ThisWeekWorkouts(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ThisWeekWorkouts", reflect.TypeOf((*MockDashboardSource)(nil).ThisWeekWorkouts), ctx)
}

// TodayMeals mocks base method.
func (m *MockDashboardSource) TodayMeals(ctx context.Context) ([]model.Meal, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "TodayMeals", ctx)
	ret0, _ := ret[0].([]model.Meal)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// TodayMeals indicates an expected call of TodayMeals.
func (mr *MockDashboardSourceMockRecorder) TodayMeals(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "TodayMeals", reflect.TypeOf((*MockDashboardSource)(nil).TodayMeals), ctx)
}
