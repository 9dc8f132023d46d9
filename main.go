package main

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"qerplunk/garin-draw/api"
	"qerplunk/garin-draw/coordinator"
	"qerplunk/garin-draw/discovery"
	"qerplunk/garin-draw/envconfig"
	"qerplunk/garin-draw/middleware"
	"qerplunk/garin-draw/ws_server"
)

func main() {
	if envConfig := envconfig.InitEnvConfig(); !envConfig {
		return
	}
	config := envconfig.EnvConfig

	hub := wsserver.NewHub()
	coord := coordinator.New(hub, coordinator.WithRetainEmptyRooms(config.RetainEmptyRooms))
	server := wsserver.NewServer(hub, coord, config.MaxMessagesPerSecond, config.JoinTimeout)

	middlewareStack := middleware.CreateStack(
		middleware.OriginCheck(config.AllowedOrigins),
		middleware.JWTCheck(config.JwtSecret),
	)

	router := api.NewRouter(middlewareStack(server.HandleWebSocket), coord)

	if config.MDNSEnabled {
		port, err := strconv.Atoi(config.Port)
		if err != nil {
			log.Printf("Skipping mDNS, port '%s' is not numeric\n", config.Port)
		} else if shutdown, err := discovery.Advertise(config.MDNSInstance, port); err != nil {
			log.Println("Error starting mDNS:", err)
		} else {
			defer shutdown()
			log.Printf("Advertising %s on port %d\n", discovery.ServiceType, port)
		}
	}

	port := config.Port

	fmt.Printf("Drawing server running on ws://localhost:%s/ws\n", port)
	if serveErr := http.ListenAndServe(":"+port, api.Wrap(router, config.AllowedOrigins)); serveErr != nil {
		fmt.Println("Error starting server:", serveErr)
	}
}
