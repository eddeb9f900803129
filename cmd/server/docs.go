package main

//go:generate swag init -g cmd/server/main.go -o docs

// @title           Talent Pool API
// @version         0.1.0
// @description     Candidate pipeline, token unlocks, notes, and activity feed.
// @host            localhost:8080
// @BasePath        /
// @schemes         http
