package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	createBlockHandler "github.com/m04kA/SMC-LessonsService/internal/api/handlers/create_block"
	createLessonHandler "github.com/m04kA/SMC-LessonsService/internal/api/handlers/create_lesson"
	createLessonAdminHandler "github.com/m04kA/SMC-LessonsService/internal/api/handlers/create_lesson_admin"
	deleteBlockHandler "github.com/m04kA/SMC-LessonsService/internal/api/handlers/delete_block"
	deleteLessonHandler "github.com/m04kA/SMC-LessonsService/internal/api/handlers/delete_lesson"
	deleteStudentHandler "github.com/m04kA/SMC-LessonsService/internal/api/handlers/delete_student"
	getDayScheduleHandler "github.com/m04kA/SMC-LessonsService/internal/api/handlers/get_day_schedule"
	getUserLessonsHandler "github.com/m04kA/SMC-LessonsService/internal/api/handlers/get_user_lessons"
	listBlocksHandler "github.com/m04kA/SMC-LessonsService/internal/api/handlers/list_blocks"
	listStudentsHandler "github.com/m04kA/SMC-LessonsService/internal/api/handlers/list_students"
	loginHandler "github.com/m04kA/SMC-LessonsService/internal/api/handlers/login"
	quotePriceHandler "github.com/m04kA/SMC-LessonsService/internal/api/handlers/quote_price"
	registerStudentHandler "github.com/m04kA/SMC-LessonsService/internal/api/handlers/register_student"
	updateStudentPricingHandler "github.com/m04kA/SMC-LessonsService/internal/api/handlers/update_student_pricing"
	"github.com/m04kA/SMC-LessonsService/internal/api/middleware"
	"github.com/m04kA/SMC-LessonsService/internal/config"
	"github.com/m04kA/SMC-LessonsService/internal/infra/cache/blockedtime"
	lessonRepo "github.com/m04kA/SMC-LessonsService/internal/infra/storage/lesson"
	studentRepo "github.com/m04kA/SMC-LessonsService/internal/infra/storage/student"
	timeblockRepo "github.com/m04kA/SMC-LessonsService/internal/infra/storage/timeblock"
	"github.com/m04kA/SMC-LessonsService/internal/service/availability"
	blocksService "github.com/m04kA/SMC-LessonsService/internal/service/blocks"
	lessonsService "github.com/m04kA/SMC-LessonsService/internal/service/lessons"
	"github.com/m04kA/SMC-LessonsService/internal/service/pricing"
	studentsService "github.com/m04kA/SMC-LessonsService/internal/service/students"
	createBlockUC "github.com/m04kA/SMC-LessonsService/internal/usecase/create_block"
	createLessonUC "github.com/m04kA/SMC-LessonsService/internal/usecase/create_lesson"
	createLessonAdminUC "github.com/m04kA/SMC-LessonsService/internal/usecase/create_lesson_admin"
	getDayScheduleUC "github.com/m04kA/SMC-LessonsService/internal/usecase/get_day_schedule"
	quotePriceUC "github.com/m04kA/SMC-LessonsService/internal/usecase/quote_price"
	"github.com/m04kA/SMC-LessonsService/pkg/dbmetrics"
	"github.com/m04kA/SMC-LessonsService/pkg/logger"
	"github.com/m04kA/SMC-LessonsService/pkg/metrics"
	"github.com/m04kA/SMC-LessonsService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-LessonsService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-LessonsService...")
	log.Info("Configuration loaded from config.toml")

	// Доменные ограничения календаря (провалидированы в config.Load)
	constraints := cfg.Calendar.Constraints()

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем репозитории (с метриками или без)
	var (
		lessonRepository  *lessonRepo.Repository
		studentRepository *studentRepo.Repository
		blockRepository   *timeblockRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		lessonRepository = lessonRepo.NewRepository(wrappedDB)
		studentRepository = studentRepo.NewRepository(wrappedDB)
		blockRepository = timeblockRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		lessonRepository = lessonRepo.NewRepository(db)
		studentRepository = studentRepo.NewRepository(db)
		blockRepository = timeblockRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Кеш заблокированного времени (если включен Redis).
	// Валидаторы внутри транзакций всегда читают из БД напрямую,
	// кеш обслуживает только просмотр расписания.
	var scheduleBlockSource getDayScheduleUC.BlockSource = blockRepository
	var blockCacheInvalidator createBlockUC.CacheInvalidator = blockedtime.NoopInvalidator{}

	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		defer redisClient.Close()

		var cacheMetrics blockedtime.MetricsCollector
		if cfg.Metrics.Enabled {
			cacheMetrics = metricsCollector
		}
		blockCache := blockedtime.New(redisClient, blockRepository, constraints, cacheMetrics, log)
		scheduleBlockSource = blockCache
		blockCacheInvalidator = blockCache
		log.Info("Blocked time cache enabled (redis=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)
	}

	// Индекс занятости читает репозитории напрямую: внутри
	// сериализуемой транзакции его запросы попадают в неё же
	availabilityIndex := availability.NewIndex(lessonRepository, blockRepository, constraints.BusinessEnd)

	// Движок ценообразования
	pricingEngine := pricing.NewEngine(constraints)

	// Инициализируем сервисы
	lessonsSvc := lessonsService.NewService(lessonRepository, log)
	blocksSvc := blocksService.NewService(
		blockRepository,
		blockCacheInvalidator,
		constraints,
		log,
	)
	studentsSvc := studentsService.NewService(studentRepository, constraints, log)

	// Инициализируем use cases
	createLessonUseCase := createLessonUC.NewUseCase(
		lessonRepository,
		studentRepository,
		availabilityIndex,
		pricingEngine,
		constraints,
		txMgr,
		log,
	)

	createLessonAdminUseCase := createLessonAdminUC.NewUseCase(
		lessonRepository,
		studentRepository,
		availabilityIndex,
		pricingEngine,
		constraints,
		txMgr,
		log,
	)

	createBlockUseCase := createBlockUC.NewUseCase(
		blockRepository,
		availabilityIndex,
		blockCacheInvalidator,
		constraints,
		txMgr,
		log,
	)

	getDayScheduleUseCase := getDayScheduleUC.NewUseCase(
		lessonRepository,
		scheduleBlockSource,
		studentRepository,
		pricingEngine,
		constraints,
		log,
	)

	quotePriceUseCase := quotePriceUC.NewUseCase(
		lessonRepository,
		studentRepository,
		pricingEngine,
		log,
	)

	// Инициализируем handlers
	registerStudent := registerStudentHandler.NewHandler(studentsSvc, log)
	login := loginHandler.NewHandler(studentsSvc, log)
	listStudents := listStudentsHandler.NewHandler(studentsSvc, log)
	updateStudentPricing := updateStudentPricingHandler.NewHandler(studentsSvc, log)
	deleteStudent := deleteStudentHandler.NewHandler(studentsSvc, log)
	getDaySchedule := getDayScheduleHandler.NewHandler(getDayScheduleUseCase, log)
	quotePrice := quotePriceHandler.NewHandler(quotePriceUseCase, log)
	createLesson := createLessonHandler.NewHandler(createLessonUseCase, log)
	getUserLessons := getUserLessonsHandler.NewHandler(lessonsSvc, log)
	deleteLesson := deleteLessonHandler.NewHandler(lessonsSvc, log)
	createLessonAdmin := createLessonAdminHandler.NewHandler(createLessonAdminUseCase, log)
	createBlock := createBlockHandler.NewHandler(createBlockUseCase, log)
	listBlocks := listBlocksHandler.NewHandler(blocksSvc, log)
	deleteBlock := deleteBlockHandler.NewHandler(blocksSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Регистрация ученика
	api.HandleFunc("/students", registerStudent.Handle).Methods(http.MethodPost)

	// Проверка учетных данных
	api.HandleFunc("/auth/login", login.Handle).Methods(http.MethodPost)

	// Расписание дня: занятые, заблокированные и свободные слоты
	api.HandleFunc("/schedule/{date}", getDaySchedule.Handle).Methods(http.MethodGet)

	// Предварительный расчёт цены слота
	api.HandleFunc("/price", quotePrice.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Уроки ---
	// Запись на урок
	protected.HandleFunc("/lessons", createLesson.Handle).Methods(http.MethodPost)

	// История уроков ученика
	protected.HandleFunc("/users/{userId}/lessons", getUserLessons.Handle).Methods(http.MethodGet)

	// Отмена урока
	protected.HandleFunc("/lessons/{lessonId}", deleteLesson.Handle).Methods(http.MethodDelete)

	// ============================================================
	// ADMIN ROUTES (требуют X-User-Role: admin)
	// ============================================================

	admin := api.PathPrefix("").Subrouter()
	admin.Use(middleware.Auth, middleware.AdminOnly)

	// Управление учениками
	admin.HandleFunc("/students", listStudents.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/admin/students/{studentId}/pricing", updateStudentPricing.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/admin/students/{studentId}", deleteStudent.Handle).Methods(http.MethodDelete)

	// Запись ученика администратором
	admin.HandleFunc("/admin/lessons", createLessonAdmin.Handle).Methods(http.MethodPost)

	// Блокировки времени
	admin.HandleFunc("/admin/blocks", listBlocks.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/admin/blocks", createBlock.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/admin/blocks/{blockId}", deleteBlock.Handle).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
