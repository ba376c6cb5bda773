package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/SafalBhandari12/jd-cv-backend/internal/ai/embeddings"
	"github.com/SafalBhandari12/jd-cv-backend/internal/ai/extractor"
	"github.com/SafalBhandari12/jd-cv-backend/internal/ai/scorer"
	"github.com/SafalBhandari12/jd-cv-backend/internal/similarity"
	"github.com/SafalBhandari12/jd-cv-backend/pkg/fsx"
	"github.com/SafalBhandari12/jd-cv-backend/pkg/fsx/fsxlocal"
	"github.com/SafalBhandari12/jd-cv-backend/pkg/fsx/fsxs3"
	"github.com/SafalBhandari12/jd-cv-backend/pkg/iam/auth"
	"github.com/SafalBhandari12/jd-cv-backend/pkg/logx"
	"github.com/SafalBhandari12/jd-cv-backend/pkg/storex"
	"github.com/SafalBhandari12/jd-cv-backend/recruitment/candidate"
	"github.com/SafalBhandari12/jd-cv-backend/recruitment/candidate/candidateapi"
	"github.com/SafalBhandari12/jd-cv-backend/recruitment/candidate/candidateauth"
	"github.com/SafalBhandari12/jd-cv-backend/recruitment/candidate/candidateinfra"
	"github.com/SafalBhandari12/jd-cv-backend/recruitment/candidate/candidatesrv"
	"github.com/SafalBhandari12/jd-cv-backend/recruitment/posting"
	"github.com/SafalBhandari12/jd-cv-backend/recruitment/posting/postingapi"
	"github.com/SafalBhandari12/jd-cv-backend/recruitment/posting/postingauth"
	"github.com/SafalBhandari12/jd-cv-backend/recruitment/posting/postinginfra"
	"github.com/SafalBhandari12/jd-cv-backend/recruitment/posting/postingsrv"
	"github.com/SafalBhandari12/jd-cv-backend/recruitment/ranking/rankingapi"
	"github.com/SafalBhandari12/jd-cv-backend/recruitment/ranking/rankinginfra"
	"github.com/SafalBhandari12/jd-cv-backend/recruitment/ranking/rankingsrv"
	"github.com/SafalBhandari12/jd-cv-backend/recruitment/ranking/worker"
)

// Container holds all application dependencies
type Container struct {
	// Infrastructure
	DB         *sqlx.DB
	Redis      *redis.Client
	FileSystem fsx.FileSystem

	// JSON document stores
	CandidateStore           *storex.File
	CredentialStore          *storex.File
	PostingStore             *storex.File
	RecruiterCredentialStore *storex.File
	RankingStore             *storex.File

	// Services
	TokenService     auth.TokenService
	CandidateService *candidatesrv.Service
	AuthService      *candidateauth.Service
	PostingService   *postingsrv.Service
	RecruiterAuth    *postingauth.Service
	RankingService   *rankingsrv.Service
	RebuildWorker    *worker.RebuildWorker
	RebuildQueue     *rankinginfra.RedisQueue

	// API Handlers
	CandidateHandlers *candidateapi.Handlers
	PostingHandlers   *postingapi.Handlers
	RankingHandlers   *rankingapi.Handlers

	// Middleware
	AuthMiddleware *auth.TokenMiddleware
}

// NewContainer initializes the dependency injection container
func NewContainer() *Container {
	if err := godotenv.Load(); err != nil {
		logx.Debugf("No .env file loaded: %v", err)
	}

	c := &Container{}
	c.initInfrastructure()
	c.initServices()
	return c
}

func (c *Container) initInfrastructure() {
	// 1. Database Connection (cosine similarity runs in Postgres via
	// pgvector)
	dbHost := envOr("DB_HOST", "localhost")
	dbPort := envOr("DB_PORT", "5432")
	dbUser := envOr("DB_USER", "postgres")
	dbPass := os.Getenv("DB_PASS")
	dbName := envOr("DB_NAME", "recruiting")
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPass, dbName)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	c.DB = db

	// 2. Redis Connection (ranking rebuild queue)
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     envOr("REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("REDIS_PASS"),
		DB:       0,
	})
	if _, err := c.Redis.Ping(context.Background()).Result(); err != nil {
		logx.Warnf("Failed to connect to Redis: %v", err)
	}

	// 3. Document archive: S3 when a bucket is configured, local disk
	// otherwise
	if bucket := os.Getenv("AWS_BUCKET"); bucket != "" {
		awsRegion := os.Getenv("AWS_REGION")
		cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(awsRegion))
		if err != nil {
			logx.Fatalf("unable to load SDK config, %v", err)
		}
		c.FileSystem = fsxs3.NewS3FileSystem(s3.NewFromConfig(cfg), bucket, "uploads")
	} else {
		root := envOr("ARCHIVE_DIR", "data/archive")
		logx.Warnf("AWS_BUCKET not set, archiving documents under %s", root)
		c.FileSystem = fsxlocal.NewLocalFileSystem(root)
	}

	// 4. JSON document stores
	dataDir := envOr("DATA_DIR", "data")
	c.CandidateStore = mustStore(dataDir + "/candidates.json")
	c.CredentialStore = mustStore(dataDir + "/credentials.json")
	c.PostingStore = mustStore(dataDir + "/postings.json")
	c.RecruiterCredentialStore = mustStore(dataDir + "/recruiter_credentials.json")
	c.RankingStore = mustStore(dataDir + "/rankings.json")

	// 5. Tokens
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		logx.Warn("JWT_SECRET is not set, using default (unsafe for production)")
		secret = "super-secret-key-please-change-me-in-production"
	}
	c.TokenService = auth.NewJWTService(secret, "jd-cv-backend", 24*time.Hour)
	c.AuthMiddleware = auth.NewTokenMiddleware(c.TokenService)
}

func (c *Container) initServices() {
	openaiKey := os.Getenv("OPENAI_API_KEY")
	if openaiKey == "" {
		logx.Warn("OPENAI_API_KEY is not set, extraction and scoring will fail")
	}

	categoryExtractor := extractor.NewCategoryExtractor(openaiKey)
	embeddingsGenerator := embeddings.NewEmbeddingsGenerator(openaiKey)
	categoryScorer := scorer.NewCategoryScorer(openaiKey)
	similarityService := similarity.NewPgvectorService(c.DB)

	candidateRepo := candidateinfra.NewJSONRepository(c.CandidateStore)
	credentialRepo := candidateinfra.NewJSONCredentialRepository(c.CredentialStore)
	postingRepo := postinginfra.NewJSONRepository(c.PostingStore)
	recruiterCredentialRepo := postinginfra.NewJSONCredentialRepository(c.RecruiterCredentialStore)
	rankingRepo := rankinginfra.NewJSONRepository(c.RankingStore)
	c.RebuildQueue = rankinginfra.NewRedisQueue(c.Redis, "ranking:rebuild")

	c.CandidateService = candidatesrv.NewService(
		candidateRepo,
		credentialRepo,
		categoryExtractor,
		embeddingsGenerator,
		categoryScorer,
		c.FileSystem,
		atsPolicyFromEnv(),
	)
	c.AuthService = candidateauth.NewService(c.CandidateService, c.TokenService)

	c.PostingService = postingsrv.NewService(
		postingRepo,
		candidateRepo,
		categoryExtractor,
		embeddingsGenerator,
		similarityService,
		c.RebuildQueue,
		c.FileSystem,
		pipelineConfigFromEnv(),
	)

	c.RecruiterAuth = postingauth.NewService(recruiterCredentialRepo, c.TokenService)

	c.RankingService = rankingsrv.NewService(candidateRepo, rankingRepo)
	c.RebuildWorker = worker.NewRebuildWorker(c.RankingService, c.RebuildQueue, workerCount())

	c.CandidateHandlers = candidateapi.NewHandlers(c.CandidateService, c.AuthService)
	c.PostingHandlers = postingapi.NewHandlers(c.PostingService, c.RecruiterAuth)
	c.RankingHandlers = rankingapi.NewHandlers(c.RankingService)
}

// ============================================================================
// Configuration Helpers
// ============================================================================

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func mustStore(path string) *storex.File {
	store, err := storex.NewFile(path)
	if err != nil {
		logx.Fatalf("Failed to open store %s: %v", path, err)
	}
	return store
}

// atsPolicyFromEnv selects the ATS policy. ATS_POLICY=length switches to
// the legacy text-length derivation.
func atsPolicyFromEnv() candidate.ATSPolicy {
	if os.Getenv("ATS_POLICY") == string(candidate.ATSPolicyLength) {
		return candidate.ATSPolicyLength
	}
	return candidate.ATSPolicyScores
}

// pipelineConfigFromEnv starts from the defaults and lets individual flags
// be flipped without code changes.
func pipelineConfigFromEnv() posting.PipelineConfig {
	cfg := posting.DefaultPipelineConfig()
	if v := os.Getenv("GATE_ZERO_SCORE_SIMILARITY"); v != "" {
		cfg.GateZeroScoreSimilarity = v != "false"
	}
	if v := os.Getenv("DEDUP_OFFERS_BY_RECRUITER"); v != "" {
		cfg.DedupOffersByRecruiter = v != "false"
	}
	if v := os.Getenv("TRUNCATE_RANKED_LIST_IN_STORAGE"); v != "" {
		cfg.TruncateRankedListInStorage = v == "true"
	}
	return cfg
}

func workerCount() int {
	if v := os.Getenv("REBUILD_WORKERS"); v != "" {
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil && n > 0 {
			return n
		}
	}
	return 2
}
