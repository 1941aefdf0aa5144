package main

import (
	"context"
	"flag"
	"os"

	"github.com/kharcha/kharcha/internal/app"
	log "github.com/sirupsen/logrus"
)

func init() {
	level := os.Getenv("LOG_LEVEL")
	if level != "" {
		logrusLevel, err := log.ParseLevel(level)
		if err != nil {
			log.Fatal(err)
		}
		log.SetLevel(logrusLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

func main() {
	sendReminders := flag.Bool("send-reminders", false, "dispatch due reminder emails once and exit")
	flag.Parse()

	application, err := app.NewApplication()
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if *sendReminders {
		sent, err := application.Dispatcher().DispatchDue(context.Background())
		if err != nil {
			log.Fatalf("failed to dispatch reminders: %v", err)
		}
		log.Infof("Dispatched %d reminder(s)", sent)
		return
	}

	if err := application.Run(); err != nil {
		log.Fatal(err)
	}
}
