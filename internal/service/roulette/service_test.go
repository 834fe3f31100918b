package roulette

import (
	"context"
	"errors"
	"sync"
	"testing"

	"roulette_backend/internal/metrics"
	"roulette_backend/internal/model"
	"roulette_backend/internal/predictor"
	"roulette_backend/internal/repository/accuracy_repo"
	"roulette_backend/internal/service"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type predictorCfg struct {
	variant predictor.Variant
}

func (c predictorCfg) Count() int                 { return predictor.DefaultCount }
func (c predictorCfg) Variant() predictor.Variant { return c.variant }
func (c predictorCfg) HistoryLimit() int          { return 5 }
func (c predictorCfg) StatsWindow() int           { return 20 }
func (c predictorCfg) MaxHotFrequency() int       { return 5 }

// txStub выполняет fn без транзакции
type txStub struct{}

func (txStub) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (txStub) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memSpinRepo struct {
	mtx   sync.Mutex
	spins map[int][]model.Spin
}

func newMemSpinRepo() *memSpinRepo {
	return &memSpinRepo{spins: make(map[int][]model.Spin)}
}

func (r *memSpinRepo) AddSpins(_ context.Context, userID int, kind model.SpinKind, outcomes []predictor.Outcome) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	for _, o := range outcomes {
		r.spins[userID] = append(r.spins[userID], model.Spin{UserID: userID, Outcome: o, Kind: kind})
	}
	return nil
}

func (r *memSpinRepo) ListSpins(_ context.Context, userID int, kind model.SpinKind) ([]model.Spin, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	res := make([]model.Spin, 0)
	for _, sp := range r.spins[userID] {
		if kind == "" || sp.Kind == kind {
			res = append(res, sp)
		}
	}
	return res, nil
}

func (r *memSpinRepo) DeleteSpins(_ context.Context, userID int) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	delete(r.spins, userID)
	return nil
}

type memPredictionRepo struct {
	mtx     sync.Mutex
	current map[int]model.Prediction
	checks  map[int][]model.PredictionCheck
}

func newMemPredictionRepo() *memPredictionRepo {
	return &memPredictionRepo{
		current: make(map[int]model.Prediction),
		checks:  make(map[int][]model.PredictionCheck),
	}
}

func (r *memPredictionRepo) GetCurrent(_ context.Context, userID int) (*model.Prediction, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	p, ok := r.current[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *memPredictionRepo) SaveCurrent(_ context.Context, p *model.Prediction) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.current[p.UserID] = *p
	return nil
}

func (r *memPredictionRepo) DeleteCurrent(_ context.Context, userID int) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	delete(r.current, userID)
	return nil
}

func (r *memPredictionRepo) AddCheck(_ context.Context, c *model.PredictionCheck) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.checks[c.UserID] = append(r.checks[c.UserID], *c)
	return nil
}

func (r *memPredictionRepo) ListChecks(_ context.Context, userID int) ([]model.PredictionCheck, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	return append([]model.PredictionCheck(nil), r.checks[userID]...), nil
}

func (r *memPredictionRepo) DeleteChecks(_ context.Context, userID int) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	delete(r.checks, userID)
	return nil
}

type RouletteSuite struct {
	suite.Suite

	ctx         context.Context
	spins       *memSpinRepo
	predictions *memPredictionRepo
	accuracy    *accuracy_repo.StatsRepo
	svc         service.RouletteService
}

func (s *RouletteSuite) SetupTest() {
	s.ctx = context.Background()
	s.spins = newMemSpinRepo()
	s.predictions = newMemPredictionRepo()
	s.accuracy = accuracy_repo.NewAccuracyRepository(20, 6.0/38)
	s.svc = NewRouletteService(
		predictorCfg{variant: predictor.American},
		predictor.New(predictor.WithSeed(7)),
		s.spins,
		s.predictions,
		s.accuracy,
		txStub{},
		metrics.NewRegistry(),
	)
}

func (s *RouletteSuite) addResults(userID int, ns ...int) *model.AddResultOutput {
	var out *model.AddResultOutput
	for _, n := range ns {
		var err error
		out, err = s.svc.AddResult(s.ctx, userID, predictor.Number(n))
		s.Require().NoError(err)
	}
	return out
}

func (s *RouletteSuite) TestNoPredictionBeforeMinHistory() {
	out := s.addResults(1, 1, 2, 3, 4, 5, 6, 7, 8, 9)

	s.Nil(out.Check)
	s.Empty(out.Prediction.Predictions)
	s.Equal(9, out.Prediction.HistoryLen)

	current, err := s.predictions.GetCurrent(s.ctx, 1)
	s.Require().NoError(err)
	s.Nil(current)
}

func (s *RouletteSuite) TestPredictionSavedAndChecked() {
	out := s.addResults(1, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10)
	s.Nil(out.Check)
	s.Require().Len(out.Prediction.Predictions, predictor.DefaultCount)

	current, err := s.predictions.GetCurrent(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().NotNil(current)
	s.Equal(out.Prediction.Predictions, current.Outcomes)
	s.Equal(10, current.HistoryLen)

	// Следующий результат из набора засчитывается как попадание
	hit := current.Outcomes[0]
	out, err = s.svc.AddResult(s.ctx, 1, hit)
	s.Require().NoError(err)
	s.Require().NotNil(out.Check)
	s.True(out.Check.Predicted)
	s.Equal(hit, out.Check.Outcome)
	s.Equal(1, out.Prediction.Checks)
	s.Equal(1, out.Prediction.Hits)
	s.InDelta(1.0, out.Prediction.SuccessRate, 1e-9)
	s.Equal([]predictor.Outcome{hit}, out.Prediction.RecentHits)

	stats := s.svc.Accuracy()
	s.Equal(1, stats.TotalChecks)
	s.Equal(1, stats.Hits)
}

func (s *RouletteSuite) TestDoubleZeroIsNotZero() {
	s.addResults(1, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10)

	// Набор без 0 и без 00
	s.Require().NoError(s.predictions.SaveCurrent(s.ctx, &model.Prediction{
		UserID:     1,
		Outcomes:   predictor.Numbers(0, 1, 2, 3, 4, 5),
		HistoryLen: 10,
	}))

	out, err := s.svc.AddResult(s.ctx, 1, predictor.DoubleZero)
	s.Require().NoError(err)
	s.Require().NotNil(out.Check)
	s.False(out.Check.Predicted)
}

func (s *RouletteSuite) TestOutcomeNotOnTable() {
	svc := NewRouletteService(
		predictorCfg{variant: predictor.European},
		predictor.New(predictor.WithSeed(1)),
		s.spins, s.predictions, s.accuracy, txStub{}, metrics.NewRegistry(),
	)

	_, err := svc.AddResult(s.ctx, 1, predictor.DoubleZero)
	s.ErrorIs(err, service.ErrOutcomeNotOnTable)

	spins, err := s.spins.ListSpins(s.ctx, 1, "")
	s.Require().NoError(err)
	s.Empty(spins)
}

func (s *RouletteSuite) TestHotNumbers() {
	s.addResults(1, 1, 2, 3, 4, 5, 6, 7)

	view, err := s.svc.AddHotNumbers(s.ctx, 1, []model.HotNumber{
		{Outcome: predictor.Number(17), Count: 2},
		{Outcome: predictor.DoubleZero},
	})
	s.Require().NoError(err)
	// 7 результатов и 3 горячих дают минимальную историю
	s.Equal(10, view.HistoryLen)
	s.Len(view.Predictions, predictor.DefaultCount)

	hot, err := s.spins.ListSpins(s.ctx, 1, model.SpinKindHot)
	s.Require().NoError(err)
	s.Len(hot, 3)

	// В историю отображения горячие не попадают
	h, err := s.svc.History(s.ctx, 1, 0)
	s.Require().NoError(err)
	s.Equal(7, h.TotalSpins)
}

func (s *RouletteSuite) TestHotNumbersValidation() {
	cases := map[string][]model.HotNumber{
		"empty":    {},
		"too many": {{Outcome: predictor.Number(1)}, {Outcome: predictor.Number(2)}, {Outcome: predictor.Number(3)}, {Outcome: predictor.Number(4)}},
		"count":    {{Outcome: predictor.Number(1), Count: 6}},
		"negative": {{Outcome: predictor.Number(1), Count: -1}},
	}
	for name, hot := range cases {
		_, err := s.svc.AddHotNumbers(s.ctx, 1, hot)
		s.ErrorIs(err, service.ErrInvalidHotNumbers, name)
	}

	_, err := s.svc.AddHotNumbers(s.ctx, 1, []model.HotNumber{{Outcome: predictor.Number(37)}})
	s.ErrorIs(err, service.ErrOutcomeNotOnTable)
}

func (s *RouletteSuite) TestHistory() {
	// 1 красное, 2 чёрное, 0 зелёное, 3 красное
	s.addResults(1, 1, 2, 0, 3)

	h, err := s.svc.History(s.ctx, 1, 3)
	s.Require().NoError(err)
	s.Equal(4, h.TotalSpins)
	s.Require().Len(h.Results, 3)
	s.Equal(predictor.Number(2), h.Results[0].Outcome)
	s.Equal(predictor.Black, h.Results[0].Color)
	s.Equal(predictor.Green, h.Results[1].Color)

	s.Equal(2, h.Colors.RedCount)
	s.Equal(1, h.Colors.BlackCount)
	s.Equal(3, h.Colors.Total)
	s.Equal(67, h.Colors.RedPercent)
	s.Equal(33, h.Colors.BlackPercent)

	// Лимит по умолчанию из конфига
	s.addResults(1, 4, 5, 6, 7)
	h, err = s.svc.History(s.ctx, 1, 0)
	s.Require().NoError(err)
	s.Len(h.Results, 5)

	_, err = s.svc.History(s.ctx, 1, -1)
	s.ErrorIs(err, service.ErrInvalidLimit)
}

func (s *RouletteSuite) TestPredictionsUsesStoredSet() {
	s.addResults(1, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10)

	stored := predictor.Numbers(36, 35, 34, 33, 32, 31)
	s.Require().NoError(s.predictions.SaveCurrent(s.ctx, &model.Prediction{
		UserID:     1,
		Outcomes:   stored,
		HistoryLen: 10,
	}))

	view, err := s.svc.Predictions(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(stored, view.Predictions)
	s.Len(view.Analyzers, 5)
	s.Len(view.Votes, predictor.American.Size())
}

func (s *RouletteSuite) TestPredictionsReplaysStoredSeed() {
	svc := NewRouletteService(
		predictorCfg{variant: predictor.American},
		predictor.New(),
		s.spins, s.predictions, s.accuracy, txStub{}, metrics.NewRegistry(),
	)

	// Без совпадений хвоста и без соседей у 0 паттерн добивается случайно
	for _, n := range []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 0} {
		_, err := svc.AddResult(s.ctx, 1, predictor.Number(n))
		s.Require().NoError(err)
	}

	current, err := s.predictions.GetCurrent(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().NotNil(current)
	current.Seed = 12345
	s.Require().NoError(s.predictions.SaveCurrent(s.ctx, current))

	seq := predictor.Numbers(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 0)
	want := predictor.New().PredictWithSeed(seq, predictor.DefaultCount, predictor.American, 12345)

	for i := 0; i < 3; i++ {
		view, err := svc.Predictions(s.ctx, 1)
		s.Require().NoError(err)
		s.Equal(current.Outcomes, view.Predictions)
		s.Equal(want.Analyzers, view.Analyzers)
		s.Equal(want.Votes, view.Votes)
	}
}

func (s *RouletteSuite) TestSavedPredictionKeepsSeed() {
	s.addResults(1, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10)

	current, err := s.predictions.GetCurrent(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().NotNil(current)
	s.Equal(int64(7), current.Seed)
}

func (s *RouletteSuite) TestUsersAreIsolated() {
	s.addResults(1, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10)

	view, err := s.svc.Predictions(s.ctx, 2)
	s.Require().NoError(err)
	s.Zero(view.HistoryLen)
	s.Empty(view.Predictions)
}

func (s *RouletteSuite) TestReset() {
	s.addResults(1, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11)

	s.Require().NoError(s.svc.Reset(s.ctx, 1))

	view, err := s.svc.Predictions(s.ctx, 1)
	s.Require().NoError(err)
	s.Zero(view.HistoryLen)
	s.Zero(view.Checks)

	current, err := s.predictions.GetCurrent(s.ctx, 1)
	s.Require().NoError(err)
	s.Nil(current)
}

func TestRouletteSuite(t *testing.T) {
	suite.Run(t, new(RouletteSuite))
}

type predictionRepoMock struct {
	mock.Mock
}

func (m *predictionRepoMock) GetCurrent(ctx context.Context, userID int) (*model.Prediction, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).(*model.Prediction)
	return p, args.Error(1)
}

func (m *predictionRepoMock) SaveCurrent(ctx context.Context, p *model.Prediction) error {
	return m.Called(ctx, p).Error(0)
}

func (m *predictionRepoMock) DeleteCurrent(ctx context.Context, userID int) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *predictionRepoMock) AddCheck(ctx context.Context, c *model.PredictionCheck) error {
	return m.Called(ctx, c).Error(0)
}

func (m *predictionRepoMock) ListChecks(ctx context.Context, userID int) ([]model.PredictionCheck, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).([]model.PredictionCheck)
	return c, args.Error(1)
}

func (m *predictionRepoMock) DeleteChecks(ctx context.Context, userID int) error {
	return m.Called(ctx, userID).Error(0)
}

func TestAddResultRepositoryError(t *testing.T) {
	errDB := errors.New("connection reset")

	repo := new(predictionRepoMock)
	repo.On("GetCurrent", mock.Anything, 1).Return(nil, errDB).Once()

	spins := newMemSpinRepo()
	accuracy := accuracy_repo.NewAccuracyRepository(10, 0.1)
	svc := NewRouletteService(
		predictorCfg{variant: predictor.American},
		predictor.New(predictor.WithSeed(1)),
		spins, repo, accuracy, txStub{}, metrics.NewRegistry(),
	)

	_, err := svc.AddResult(context.Background(), 1, predictor.Number(5))
	require.ErrorIs(t, err, errDB)

	repo.AssertExpectations(t)
	assert.Zero(t, accuracy.Stats().TotalChecks)

	got, err := spins.ListSpins(context.Background(), 1, "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestResetStopsOnError(t *testing.T) {
	errDB := errors.New("deadlock")

	repo := new(predictionRepoMock)
	repo.On("DeleteCurrent", mock.Anything, 3).Return(errDB).Once()

	svc := NewRouletteService(
		predictorCfg{variant: predictor.American},
		predictor.New(),
		newMemSpinRepo(), repo, accuracy_repo.NewAccuracyRepository(10, 0.1), txStub{}, metrics.NewRegistry(),
	)

	err := svc.Reset(context.Background(), 3)
	require.ErrorIs(t, err, errDB)
	repo.AssertNotCalled(t, "DeleteChecks", mock.Anything, mock.Anything)
}
