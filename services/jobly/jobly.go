// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joeshaw/envdecode"
	"github.com/relabs-tech/jobly/core/backend"
	"github.com/relabs-tech/jobly/core/csql"
	"github.com/relabs-tech/jobly/core/logger"
	"github.com/relabs-tech/jobly/core/notify"
	"github.com/sirupsen/logrus"
)

// Service holds the configuration for this service
//
// use POSTGRES="host=localhost port=5432 user=postgres dbname=postgres sslmode=disable"
// and POSTGRES_PASSWORD="docker"
type Service struct {
	Postgres         string `env:"POSTGRES,required" description:"the connection string for the Postgres DB without password"`
	PostgresPassword string `env:"POSTGRES_PASSWORD,optional" description:"password to the Postgres DB"`
	PostgresSchema   string `env:"POSTGRES_SCHEMA,default=public" description:"the database schema for all jobly tables"`
	SecretKey        string `env:"SECRET_KEY,required" description:"the key used to sign the JWT bearer tokens"`
	Port             int    `env:"PORT,default=3001" description:"the port the server listens on"`
	LogLevel         string `env:"LOG_LEVEL,default=info" description:"the log level: debug, info, warn or error"`
	BcryptWorkFactor int    `env:"BCRYPT_WORK_FACTOR,default=12" description:"the bcrypt cost of password hashes"`
	KafkaBrokers     string `env:"KAFKA_BROKERS,optional" description:"comma separated kafka brokers for resource events. Events are disabled if empty"`
	KafkaTopic       string `env:"KAFKA_TOPIC,default=jobly" description:"the kafka topic for resource events"`
}

func main() {
	service := &Service{}
	if err := envdecode.Decode(service); err != nil {
		panic(err)
	}

	level, err := logrus.ParseLevel(service.LogLevel)
	if err != nil {
		panic(err)
	}
	logger.InitLogger(level)
	rlog := logger.Default()

	db := csql.OpenWithSchema(service.Postgres, service.PostgresPassword, service.PostgresSchema)
	defer db.Close()
	if err = db.Migrate(); err != nil {
		rlog.WithError(err).Fatalln("cannot migrate database")
	}

	router := mux.NewRouter()
	builder := &backend.Builder{
		DB:               db,
		Router:           router,
		SecretKey:        []byte(service.SecretKey),
		BcryptWorkFactor: service.BcryptWorkFactor,
	}
	if service.KafkaBrokers != "" {
		kafkaNotifier := notify.NewKafkaNotifier(strings.Split(service.KafkaBrokers, ","), service.KafkaTopic)
		defer kafkaNotifier.Close()
		builder.Notifier = kafkaNotifier
		rlog.Infoln("publishing resource events to kafka topic", service.KafkaTopic)
	}
	backend.New(builder)

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(service.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		rlog.Infoln("listen on", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			rlog.WithError(err).Fatalln("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	rlog.Infoln("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		rlog.WithError(err).Errorln("shutdown failed")
	}
}
