package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/supplykingmv/vcard/internal/feed"
	"github.com/supplykingmv/vcard/internal/presence"
	"github.com/supplykingmv/vcard/internal/repository"
	"github.com/supplykingmv/vcard/internal/service"
	transport "github.com/supplykingmv/vcard/internal/transport/http"
	"github.com/supplykingmv/vcard/pkg/config"
	"github.com/supplykingmv/vcard/pkg/db"
	"github.com/supplykingmv/vcard/pkg/mq"
	"github.com/supplykingmv/vcard/pkg/obs"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	shutdown, err := obs.InitTracer("cardbook-server")
	if err != nil {
		log.Printf("[server] tracing disabled: %v", err)
	} else {
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Printf("[server] tracer shutdown: %v", err)
			}
		}()
	}

	gdb := db.Open(cfg.PGDSN)
	contacts := repository.NewContactRepo(gdb)
	users := repository.NewUserRepo(gdb)
	notifications := repository.NewNotificationRepo(gdb)
	for _, m := range []interface{ Migrate() error }{contacts, users, notifications} {
		if err := m.Migrate(); err != nil {
			log.Fatal(err)
		}
	}

	pres := presence.NewStore(cfg.RedisAddr, cfg.RedisDB)
	if err := pres.Ping(context.Background()); err != nil {
		log.Fatalf("redis ping: %v", err)
	}
	defer pres.Close()

	stopPresenceLog := pres.Subscribe(context.Background(), func(rec presence.Record) {
		state := "offline"
		if rec.Online {
			state = "online"
		}
		log.Printf("[presence] %s is %s", rec.UserID, state)
	})
	defer stopPresenceLog()

	pub, err := mq.NewPublisher(cfg.RabbitURL, cfg.MQExchange)
	if err != nil {
		log.Fatalf("rabbitmq: %v", err)
	}
	defer pub.Close()

	notifFeed := feed.New(pres.Client(), "notifications:updates")

	authSvc := service.NewAuthSvc(users, service.NewConsoleMailer(),
		time.Duration(cfg.JWTExpireMin)*time.Minute,
		time.Duration(cfg.RefreshExpireHr)*time.Hour,
		time.Duration(cfg.SessionExpireHr)*time.Hour,
		time.Duration(cfg.ResetExpireMin)*time.Minute,
	)
	userSvc := service.NewUserSvc(users)
	contactSvc := service.NewContactSvc(contacts, pub)
	notificationSvc := service.NewNotificationSvc(notifications, users, pub, notifFeed)

	seedBootstrapAdmin(userSvc)

	r := transport.NewRouter(transport.Deps{
		Auth:          authSvc,
		Users:         userSvc,
		Contacts:      contactSvc,
		Notifications: notificationSvc,
		Presence:      pres,
	})

	log.Println("cardbook-server on", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}

// seedBootstrapAdmin mirrors a superadmin row on first boot so a fresh
// deployment has a way in. Controlled by SEED_ADMIN_EMAIL /
// SEED_ADMIN_PASSWORD; a no-op when unset or already present.
func seedBootstrapAdmin(users *service.UserSvc) {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[server] seed admin: %v", err)
		return
	}
	if err := users.EnsureSeedAdmin(context.Background(), email, "Super Admin", string(hash)); err != nil {
		log.Printf("[server] seed admin: %v", err)
	}
}
