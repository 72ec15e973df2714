package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/quillhaven/quillhaven/internal/repository"
	mysqlRepo "github.com/quillhaven/quillhaven/internal/repository/mysql"
	redisCache "github.com/quillhaven/quillhaven/internal/repository/redis"
	"github.com/quillhaven/quillhaven/internal/rest"
	"github.com/quillhaven/quillhaven/internal/rest/middleware"
	"github.com/quillhaven/quillhaven/internal/usecase/article"
	"github.com/quillhaven/quillhaven/internal/usecase/comment"
	"github.com/quillhaven/quillhaven/internal/usecase/favorite"
	"github.com/quillhaven/quillhaven/internal/usecase/preference"
	"github.com/quillhaven/quillhaven/internal/usecase/profile"
	"github.com/quillhaven/quillhaven/internal/usecase/rating"
	"github.com/quillhaven/quillhaven/internal/usecase/user"
	"github.com/quillhaven/quillhaven/internal/workers"
)

const (
	defaultTimeout      = 30
	defaultAddress      = ":9090"
	defaultCacheDB      = 0
	defaultBloomBitSize = 10000000
	dbMaxRetry          = 10
	dbRetryIntervalSec  = 2
)

func init() {
	err := godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file")
	}
}

func main() {
	//prepare database
	dbHost := os.Getenv("DATABASE_HOST")
	dbPort := os.Getenv("DATABASE_PORT")
	dbUser := os.Getenv("DATABASE_USER")
	dbPass := os.Getenv("DATABASE_PASS")
	dbName := os.Getenv("DATABASE_NAME")
	connection := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", dbUser, dbPass, dbHost, dbPort, dbName)
	val := url.Values{}
	val.Add("parseTime", "1")
	val.Add("loc", "UTC")
	dsn := fmt.Sprintf("%s?%s", connection, val.Encode())

	var (
		db  *gorm.DB
		err error
	)

	for i := range dbMaxRetry {
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
		if err != nil {
			log.Printf("failed to open connection to database (attempt %d/%d): %v", i+1, dbMaxRetry, err)
		} else {
			sqlDB, err := db.DB()
			if err != nil {
				log.Printf("failed to get sql.DB from gorm.DB (attempt %d/%d): %v", i+1, dbMaxRetry, err)
				continue
			}
			err = sqlDB.Ping()
			if err == nil {
				break
			}
			log.Printf("failed to ping database (attempt %d/%d): %v", i+1, dbMaxRetry, err)
			_ = sqlDB.Close()
		}

		time.Sleep(dbRetryIntervalSec * time.Second)
	}

	if err != nil {
		log.Fatal("could not connect to database after retries:", err)
	}

	defer func() {
		sqlDB, err := db.DB()
		if err != nil {
			log.Fatal("got error when getting sql.DB from gorm.DB", err)
		}
		if err := sqlDB.Close(); err != nil {
			log.Fatal("got error when closing the DB connection", err)
		}
	}()

	// prepare cache
	cacheHost := os.Getenv("CACHE_HOST")
	cachePort := os.Getenv("CACHE_PORT")
	cachePass := os.Getenv("CACHE_PASS")
	cacheDBStr := os.Getenv("CACHE_DB")
	cacheDB, err := strconv.Atoi(cacheDBStr)
	if err != nil {
		log.Println("failed to parse cacheDB, using default cacheDB")
		cacheDB = defaultCacheDB
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cacheHost + ":" + cachePort,
		Password: cachePass,
		DB:       cacheDB,
	})
	defer func() {
		err = client.Close()
		if err != nil {
			log.Fatal("got error when closing the cache connection", err)
		}
	}()

	_, err = client.Ping(context.Background()).Result()
	if err != nil {
		log.Fatal("failed to open connection to cache", err)
		return
	}

	// prepare gin
	route := gin.Default()
	route.Use(middleware.CORS())
	timeoutStr := os.Getenv("CONTEXT_TIMEOUT")
	timeout, err := strconv.Atoi(timeoutStr)
	if err != nil {
		log.Println("failed to parse timeout, using default timeout")
		timeout = defaultTimeout
	}
	timeoutContext := time.Duration(timeout) * time.Second
	route.Use(middleware.SetRequestContextWithTimeout(timeoutContext))

	// Prepare Repository
	userRepo := mysqlRepo.NewUserRepository(db)
	profileRepo := mysqlRepo.NewProfileRepository(db)
	followRepo := mysqlRepo.NewFollowRepository(db)
	commentRepo := mysqlRepo.NewCommentRepository(db)
	preferenceRepo := mysqlRepo.NewPreferenceRepository(db)
	ratingRepo := mysqlRepo.NewRatingRepository(db)
	favoriteRepo := mysqlRepo.NewFavoriteRepository(db)
	tagRepo := mysqlRepo.NewTagRepository(db)

	// Article相关的三层架构
	// 1. DB层
	articleDBRepo := mysqlRepo.NewArticleRepository(db)
	// 2. Cache层
	articleCache := redisCache.NewArticleCache(client)
	// 3. Repository协调层
	articleRepo := repository.NewArticleRepository(articleDBRepo, articleCache, userRepo)

	bloomBitSizeStr := os.Getenv("BLOOM_FILTER_SIZE")
	bloomBitSize, err := strconv.ParseUint(bloomBitSizeStr, 10, 64)
	if err != nil {
		log.Printf("failed to parse bloom bit size, using default size")
		bloomBitSize = defaultBloomBitSize
	}
	bloomRepo := redisCache.NewRedisBloomRepo(client, bloomBitSize)

	// Start worker
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	viewsSyncer := workers.NewSyncViewsWorker(articleDBRepo, articleCache)
	go viewsSyncer.Start(ctx)

	// Build service Layer
	jwtSecret := []byte(os.Getenv("JWT_SECRET"))
	jwtTTLStr := os.Getenv("JWT_EXPIRE_HOURS")
	jwtTTL, err := strconv.Atoi(jwtTTLStr)
	if err != nil {
		log.Println("failed to parse JWT TTL, using default 24 hours")
		jwtTTL = 24
	}
	articleSvc := article.NewService(articleRepo, tagRepo, preferenceRepo, articleCache, bloomRepo)
	userSvc := user.NewService(userRepo, jwtSecret, time.Duration(jwtTTL)*time.Hour)
	profileSvc := profile.NewService(profileRepo, followRepo)
	commentSvc := comment.NewService(commentRepo, bloomRepo)
	preferenceSvc := preference.NewService(preferenceRepo)
	ratingSvc := rating.NewService(ratingRepo, articleRepo)
	favoriteSvc := favorite.NewService(favoriteRepo, articleRepo, bloomRepo)

	articleHandler := rest.NewArticleHandler(articleSvc)
	userHandler := rest.NewUserHandler(userSvc)
	profileHandler := rest.NewProfileHandler(profileSvc)
	commentHandler := rest.NewCommentHandler(commentSvc)
	reactionHandler := rest.NewReactionHandler(preferenceSvc, commentSvc, bloomRepo)
	ratingHandler := rest.NewRatingHandler(ratingSvc)
	favoriteHandler := rest.NewFavoriteHandler(favoriteSvc)

	authMiddleware := middleware.AuthMiddleware(string(jwtSecret))

	// Prepare bloom filter
	if err := articleSvc.InitBloomFilter(ctx); err != nil {
		log.Printf("failed to init bloom filter: %v\n", err)
		return
	}

	// Register routes
	route.POST("/register", userHandler.Register)
	route.POST("/login", userHandler.Login)

	route.GET("/articles", articleHandler.FetchArticle)
	route.GET("/articles/:id", articleHandler.GetByID)
	route.GET("/articles/ranks", articleHandler.FetchRank)
	route.GET("/tags", articleHandler.FetchTags)

	route.GET("/articles/:id/comments", commentHandler.FetchByArticle)
	route.GET("/articles/:id/rating", ratingHandler.Report)

	route.GET("/profiles/:username", profileHandler.GetByUsername)

	authorized := route.Group("/")
	authorized.Use(authMiddleware)
	{
		authorized.PUT("/user/password", userHandler.EditPassword)

		authorized.POST("/articles", articleHandler.Store)
		authorized.PUT("/articles/:id", articleHandler.Update)
		authorized.DELETE("/articles/:id", articleHandler.Delete)

		authorized.POST("/articles/:id/comments", commentHandler.Create)
		authorized.DELETE("/articles/:id/comments/:cid", commentHandler.Delete)

		authorized.POST("/articles/:id/like", reactionHandler.LikeArticle)
		authorized.POST("/articles/:id/dislike", reactionHandler.DislikeArticle)
		authorized.POST("/articles/:id/comments/:cid/like", reactionHandler.LikeComment)
		authorized.POST("/articles/:id/comments/:cid/dislike", reactionHandler.DislikeComment)

		authorized.POST("/articles/:id/rating", ratingHandler.Rate)

		authorized.POST("/articles/:id/favorite", favoriteHandler.Favorite)
		authorized.DELETE("/articles/:id/favorite", favoriteHandler.Unfavorite)
		authorized.GET("/favorites", favoriteHandler.FetchOwn)

		authorized.GET("/profiles", profileHandler.FetchOthers)
		authorized.PUT("/profiles", profileHandler.Update)
		authorized.POST("/profiles/:username/follow", profileHandler.ToggleFollow)
		authorized.GET("/profiles/:username/followers", profileHandler.Followers)
		authorized.GET("/profiles/:username/following", profileHandler.Following)
	}

	// Start Server
	address := os.Getenv("SERVER_ADDRESS")
	if address == "" {
		address = defaultAddress
	}
	srv := &http.Server{
		Addr:    address,
		Handler: route,
	}
	go func() {
		log.Printf("Server is running on %s\n", address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err) // nolint
		}
	}()

	// shutdown
	<-ctx.Done()
	log.Println("Shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Waiting for worker to cleanup...")
	time.Sleep(2 * time.Second)

	log.Println("Server exiting")
}
