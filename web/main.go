package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-nextweek-raytracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	textures := flag.String("textures", "", "Directory holding image textures")
	flag.Parse()

	// Create and start web server
	webServer := server.NewServer(*port)
	webServer.TextureDir = *textures

	log.Printf("Next Week Raytracer Web Server")
	log.Printf("Visit http://localhost:%d to start rendering", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
