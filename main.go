package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/quickbite/storefront/lib/myhttpclient"
	"github.com/quickbite/storefront/lib/mynotify"
	"github.com/quickbite/storefront/lib/mypublisher"
	"github.com/quickbite/storefront/lib/mypubsub"
	"github.com/quickbite/storefront/lib/myqueue"
	"github.com/quickbite/storefront/lib/mystore"
	"github.com/quickbite/storefront/lib/mytime"
	"github.com/quickbite/storefront/lib/myuuid"
	"github.com/quickbite/storefront/services/cart"
	"github.com/quickbite/storefront/services/cartapi"
	"github.com/quickbite/storefront/services/catalog"
	"github.com/quickbite/storefront/services/session"
)

func main() {
	c := context.Background()

	// optional, the environment itself wins
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Error loading .env file: %s", err)
	}

	backendURL := os.Getenv("CART_API_URL")
	if backendURL == "" {
		backendURL = "http://localhost:4000"
	}

	router := mux.NewRouter()

	pubsub, pubsubCleanup, err := mypubsub.New(c)
	if err != nil {
		log.Fatalf("Error creating pubsub: %s", err)
	}
	defer pubsubCleanup()

	queue, queueCleanup, err := myqueue.New(c)
	if err != nil {
		log.Fatalf("Error creating task queue: %s", err)
	}
	defer queueCleanup()

	publisher, publisherCleanup, err := mypublisher.New(c, pubsub, queue, mytime.RealNower{})
	if err != nil {
		log.Fatalf("Error creating publisher: %s", err)
	}
	defer publisherCleanup()
	publisher.RegisterEndpoints(c, router)

	sessionStore, sessionStoreCleanup, err := mystore.New[session.Session](c)
	if err != nil {
		log.Fatalf("Error creating session store: %s", err)
	}
	defer sessionStoreCleanup()

	cartCacheStore, cartCacheCleanup, err := mystore.New[cart.CachedCart](c)
	if err != nil {
		log.Fatalf("Error creating cart cache store: %s", err)
	}
	defer cartCacheCleanup()

	notifier := mynotify.New(mytime.RealNower{}, myuuid.RealUUIDer{})
	sender := myhttpclient.New()

	sessionService := session.NewService(sessionStore, publisher)
	err = sessionService.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error starting session service: %s", err)
	}

	cartService := cart.NewService(cartapi.NewClient(backendURL, sender), sessionService, cartCacheStore, notifier, pubsub)
	err = cartService.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error starting cart service: %s", err)
	}

	catalogService := catalog.NewService(catalog.NewClient(backendURL, sender), cartService, notifier)
	catalogService.RegisterEndpoints(c, router)

	startWebServerBlocking(router)
}

func startWebServerBlocking(router *mux.Router) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting webserver on port %s (try http://localhost:%s)", port, port)
	err := http.ListenAndServe(fmt.Sprintf(":%s", port), router)
	if err != nil {
		log.Fatalf("Error starting webserver on port %s: %s", port, err)
	}
}
