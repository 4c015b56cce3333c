package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/seung-2001/plant/internal/comment"
	"github.com/seung-2001/plant/internal/config"
	"github.com/seung-2001/plant/internal/post"
	"github.com/seung-2001/plant/internal/server"
	"github.com/seung-2001/plant/internal/storage/memory"
	"github.com/seung-2001/plant/internal/storage/postgres"
	"github.com/seung-2001/plant/internal/user"
	"github.com/seung-2001/plant/internal/volunteer"
	"github.com/seung-2001/plant/models"
)

func main() {
	storageType := flag.String("storage", "postgres", "Тип хранилища: memory или postgres")
	flag.Parse()

	// загружаем .env из нашего config.go
	config.LoadEnv()

	var userStore user.UserStorage
	var postStore post.PostStorage
	var commentStore comment.CommentStorage
	var volunteerStore volunteer.VolunteerStorage

	switch *storageType {
	case "postgres":
		if err := postgres.InitDB(); err != nil {
			log.Fatalf("failed to init database: %v", err)
		}

		err := postgres.DB.AutoMigrate(
			&models.User{},
			&models.Post{},
			&models.Comment{},
			&models.PostLike{},
			&models.Volunteer{},
			&models.Participation{},
		).Error
		if err != nil {
			log.Fatalf("failed to migrate database: %v", err)
		}

		log.Println("Используется PostgreSQL хранилище")
		userStore = postgres.NewUserPostgresStorage()
		postStore = postgres.NewPostPostgresStorage()
		commentStore = postgres.NewCommentPostgresStorage()
		volunteerStore = postgres.NewVolunteerPostgresStorage()

	case "memory":
		log.Println("Используется in-memory хранилище")
		userStore = memory.NewUserMemoryStorage()
		memPosts := memory.NewPostMemoryStorage()
		postStore = memPosts
		commentStore = memory.NewCommentMemoryStorage(memPosts)
		volunteerStore = memory.NewVolunteerMemoryStorage()

	default:
		log.Fatalf("неизвестный тип хранилища: %s", *storageType)
	}

	origins := strings.Split(config.GetEnvDefault("CORS_ORIGINS", "*"), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	srv := server.New(userStore, postStore, commentStore, volunteerStore, origins)

	port := config.GetEnvDefault("PORT", "8080")

	// HTTP сервер
	httpServer := &http.Server{
		Addr:    ":" + port,
		Handler: srv.Handler(),
	}

	// запуск HTTP сервера
	go func() {
		log.Printf("Сервер запущен на http://localhost:%s/", port)
		// строка не возвращается (блокирует поток) пока не выполнится Shutdown() или не произойдет фатальная ошибка
		// Поэтому запускаем goroutine
		err := httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Ошибка сервера: %v", err)
		}
	}()

	// Ожидание SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit // ждет сигнал

	log.Println("Завершение...")

	if err := httpServer.Shutdown(context.Background()); err != nil {
		log.Fatalf("Ошибка при завершении сервера: %v", err)
	}

	if *storageType == "postgres" {
		if err := postgres.CloseDB(); err != nil {
			log.Printf("Ошибка при закрытии БД: %v", err)
		}
	}

	log.Println("Сервер остановлен корректно")
}
