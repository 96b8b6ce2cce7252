package trip

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"ecoVoyage/business/evaluation"
	"ecoVoyage/business/explain"
	"ecoVoyage/business/recommender"
	"ecoVoyage/business/sustainability"
	"ecoVoyage/domain"
	"ecoVoyage/pkg/config"
	"ecoVoyage/pkg/logger"
	"ecoVoyage/pkg/metrics"
)

const defaultLimit = 10

// ---- Repository interfaces ----

type UserRepository interface {
	FindAll(ctx context.Context) ([]domain.User, error)
}

type DestinationRepository interface {
	FindAll(ctx context.Context) ([]domain.Destination, error)
}

type VisitRepository interface {
	FindAll(ctx context.Context) ([]domain.Visit, error)
	Save(ctx context.Context, visit *domain.Visit) error
}

type ScoreRepository interface {
	FindAll(ctx context.Context) ([]domain.PrecomputedScore, error)
}

// ---- Usecase / Service ----

// Service owns the in-memory serving state: the dataset, the fitted
// ensemble, the reranker and the counterfactual engine. All serving
// methods run under one mutex; the non-reentrant dataset overrides rely
// on that exclusion.
type Service struct {
	userRepo  UserRepository
	destRepo  DestinationRepository
	visitRepo VisitRepository
	scoreRepo ScoreRepository

	cfg config.RecommenderConfig

	mu       sync.Mutex
	ds       *recommender.Dataset
	ensemble *recommender.Ensemble
	members  []recommender.Recommender
	reranker *sustainability.Reranker
	engine   *explain.Engine
}

func NewService(
	userRepo UserRepository,
	destRepo DestinationRepository,
	visitRepo VisitRepository,
	scoreRepo ScoreRepository,
	cfg config.RecommenderConfig,
) *Service {
	return &Service{
		userRepo:  userRepo,
		destRepo:  destRepo,
		visitRepo: visitRepo,
		scoreRepo: scoreRepo,
		cfg:       cfg,
	}
}

// Load pulls users, destinations, visits and precomputed scores from the
// repositories and rebuilds the whole serving state. Safe to call again
// to refresh.
func (s *Service) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("load users: %w", err)
	}

	destinations, err := s.destRepo.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("load destinations: %w", err)
	}

	visits, err := s.visitRepo.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("load visits: %w", err)
	}

	scores, err := s.scoreRepo.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("load precomputed scores: %w", err)
	}

	matrix := recommender.BuildMatrix(users, destinations, visits)
	features := BuildFeatureMatrix(destinations)

	ds, err := recommender.NewDataset(users, destinations, matrix, features)
	if err != nil {
		return fmt.Errorf("build dataset: %w", err)
	}

	ensemble, members, err := s.buildEnsemble(ds, scores)
	if err != nil {
		return err
	}

	if err := ensemble.Fit(ds); err != nil {
		return fmt.Errorf("fit ensemble: %w", err)
	}

	reranker, err := sustainability.NewReranker(
		s.cfg.SustainabilityWeight,
		s.cfg.WeightingScheme,
		sustainability.SchemeParams{Threshold: s.cfg.SchemeThreshold},
	)
	if err != nil {
		return fmt.Errorf("build reranker: %w", err)
	}

	s.mu.Lock()
	s.ds = ds
	s.ensemble = ensemble
	s.members = members
	s.reranker = reranker
	s.engine = explain.NewEngine(pipeline{s}, reranker, ds)
	s.mu.Unlock()

	logger.Info("dataset_loaded",
		"users", len(users),
		"destinations", len(destinations),
		"visits", len(visits),
		"precomputed_scores", len(scores),
		"members", ensemble.Size(),
	)

	return nil
}

// buildEnsemble assembles the configured members. A member with weight 0
// is left out; the learned scorer also needs at least one precomputed row.
func (s *Service) buildEnsemble(ds *recommender.Dataset, scores []domain.PrecomputedScore) (*recommender.Ensemble, []recommender.Recommender, error) {
	ensemble := recommender.NewEnsemble()
	var members []recommender.Recommender

	add := func(rec recommender.Recommender, weight float64) {
		if weight <= 0 {
			return
		}
		ensemble.AddRecommender(rec, weight)
		members = append(members, rec)
	}

	add(recommender.NewPopularity(), s.cfg.WPopularity)
	add(recommender.NewContentSimilarity(), s.cfg.WContent)
	add(recommender.NewUserCF(), s.cfg.WUserCF)
	add(recommender.NewItemCF(), s.cfg.WItemCF)

	if s.cfg.WLearned > 0 && len(scores) > 0 {
		fn, err := learnedScoreFunc(ds, scores)
		if err != nil {
			return nil, nil, fmt.Errorf("build learned scorer: %w", err)
		}
		add(recommender.NewLearned(fn), s.cfg.WLearned)
	}

	if ensemble.Size() == 0 {
		return nil, nil, domain.NoRecommendersConfiguredError{}
	}

	return ensemble, members, nil
}

// learnedScoreFunc indexes precomputed rows by matrix position. Rows for
// unknown users or destinations are skipped, not errors; the table may be
// trained against a wider catalog.
func learnedScoreFunc(ds *recommender.Dataset, scores []domain.PrecomputedScore) (recommender.ScoreFunc, error) {
	type cell struct{ u, d int }

	table := make(map[cell]float64, len(scores))
	for _, row := range scores {
		ui, err := ds.UserIndex(row.UserID)
		if err != nil {
			continue
		}
		di, err := ds.DestinationIndex(row.DestinationID)
		if err != nil {
			continue
		}
		table[cell{ui, di}] = row.Score
	}

	return func(userIdx, destIdx int) float64 {
		return table[cell{userIdx, destIdx}]
	}, nil
}

// pipeline exposes the unlocked recommend path to the counterfactual
// engine, which always runs under the service mutex.
type pipeline struct {
	s *Service
}

func (p pipeline) RankedRecommend(userID uint, n int, excludeVisited bool) ([]domain.Candidate, error) {
	return p.s.rankedRecommend(userID, n, excludeVisited)
}

// rankedRecommend is the core pipeline: ensemble fuse then sustainability
// rerank. Callers must hold s.mu.
func (s *Service) rankedRecommend(userID uint, n int, excludeVisited bool) ([]domain.Candidate, error) {
	cands, err := s.ensemble.Recommend(userID, n, excludeVisited)
	if err != nil {
		return nil, err
	}

	return s.reranker.Rerank(cands), nil
}

// ---- Recommendation / serving ----

func (s *Service) Recommend(ctx context.Context, userID uint, limit int, excludeVisited bool) ([]domain.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	start := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(); err != nil {
		return nil, err
	}

	recs, err := s.rankedRecommend(userID, limit, excludeVisited)
	if err != nil {
		return nil, err
	}

	metrics.RecommendRequests.Inc()
	metrics.RecommendLatency.Observe(time.Since(start).Seconds())

	logger.Debug("recommend",
		"trace_id", TraceIDFromContext(ctx),
		"user_id", userID,
		"limit", limit,
		"exclude_visited", excludeVisited,
		"returned", len(recs),
	)

	return recs, nil
}

// LogVisit persists a visit and folds it into the served matrix, then
// refits the ensemble so popularity and similarity pick it up.
func (s *Service) LogVisit(ctx context.Context, userID uint, destID uint64) (*domain.Visit, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(); err != nil {
		return nil, err
	}

	if err := s.ds.RecordVisit(userID, destID); err != nil {
		return nil, err
	}

	visit := &domain.Visit{UserID: userID, DestinationID: destID}
	if err := s.visitRepo.Save(ctx, visit); err != nil {
		return nil, fmt.Errorf("save visit: %w", err)
	}

	if err := s.ensemble.Fit(s.ds); err != nil {
		return nil, fmt.Errorf("refit after visit: %w", err)
	}

	logger.Debug("visit_logged",
		"trace_id", TraceIDFromContext(ctx),
		"user_id", userID,
		"destination_id", destID,
	)

	return visit, nil
}

// SustainabilityBreakdown returns the per-metric scores and derived
// overall for one destination.
func (s *Service) SustainabilityBreakdown(ctx context.Context, destID uint64) (map[string]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(); err != nil {
		return nil, err
	}

	dest, err := s.ds.DestinationByID(destID)
	if err != nil {
		return nil, err
	}

	return sustainability.Breakdown(dest), nil
}

// ---- Reranker configuration ----

func (s *Service) SetSustainabilityWeight(ctx context.Context, weight float64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(); err != nil {
		return err
	}

	if err := s.reranker.SetWeight(weight); err != nil {
		return err
	}

	metrics.RerankerConfigUpdates.WithLabelValues(s.reranker.SchemeName()).Inc()

	logger.Info("reranker_weight_updated",
		"trace_id", TraceIDFromContext(ctx),
		"weight", weight,
	)

	return nil
}

func (s *Service) SetWeightingScheme(ctx context.Context, name string, threshold float64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(); err != nil {
		return err
	}

	if threshold <= 0 {
		threshold = sustainability.DefaultThreshold
	}

	if err := s.reranker.SetScheme(name, sustainability.SchemeParams{Threshold: threshold}); err != nil {
		return err
	}

	metrics.RerankerConfigUpdates.WithLabelValues(name).Inc()

	logger.Info("reranker_scheme_updated",
		"trace_id", TraceIDFromContext(ctx),
		"scheme", name,
		"threshold", threshold,
	)

	return nil
}

// RerankerConfig reports the currently served weight and scheme.
func (s *Service) RerankerConfig() (weight float64, scheme string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.reranker == nil {
		return 0, ""
	}
	return s.reranker.Weight(), s.reranker.SchemeName()
}

// ---- Counterfactual simulations ----

func (s *Service) ExplainSustainabilityWeight(ctx context.Context, userID uint, destID uint64, targetWeight float64) (domain.CounterfactualResult, error) {
	return s.explainWith(ctx, domain.FactorSustainabilityWeight, func() (domain.CounterfactualResult, error) {
		return s.engine.ExplainWeight(userID, destID, targetWeight)
	})
}

func (s *Service) ExplainDestinationFeature(ctx context.Context, userID uint, destID uint64, feature string, targetValue float64) (domain.CounterfactualResult, error) {
	return s.explainWith(ctx, domain.FactorDestinationFeature, func() (domain.CounterfactualResult, error) {
		return s.engine.ExplainDestinationFeature(userID, destID, feature, targetValue)
	})
}

func (s *Service) ExplainUserFeature(ctx context.Context, userID uint, destID uint64, feature string, targetValue float64) (domain.CounterfactualResult, error) {
	return s.explainWith(ctx, domain.FactorUserFeature, func() (domain.CounterfactualResult, error) {
		return s.engine.ExplainUserFeature(userID, destID, feature, targetValue)
	})
}

func (s *Service) explainWith(ctx context.Context, factor string, run func() (domain.CounterfactualResult, error)) (domain.CounterfactualResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.CounterfactualResult{}, fmt.Errorf("context error: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(); err != nil {
		return domain.CounterfactualResult{}, err
	}

	res, err := run()
	if err != nil {
		return domain.CounterfactualResult{}, err
	}

	metrics.CounterfactualRuns.WithLabelValues(factor).Inc()

	logger.Debug("counterfactual",
		"trace_id", TraceIDFromContext(ctx),
		"user_id", res.UserID,
		"destination_id", res.DestinationID,
		"factor", res.Factor,
		"attribute", res.Attribute,
		"baseline_rank", res.BaselineRank,
		"perturbed_rank", res.PerturbedRank,
		"dropped_out", res.DroppedOut,
	)

	return res, nil
}

// ---- Evaluation ----

// Evaluate runs the holdout harness over every known user for each
// ensemble member.
func (s *Service) Evaluate(ctx context.Context, k int) ([]evaluation.Metrics, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if k <= 0 {
		k = 5
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(); err != nil {
		return nil, err
	}

	testUsers := make([]uint, 0, s.ds.NumUsers())
	for i := 0; i < s.ds.NumUsers(); i++ {
		testUsers = append(testUsers, s.ds.UserAt(i).ID)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	return evaluation.CompareRecommenders(s.members, s.ds, testUsers, k, rng)
}

func (s *Service) ready() error {
	if s.ds == nil {
		return fmt.Errorf("recommendation data not loaded")
	}
	return nil
}
