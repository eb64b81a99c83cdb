package main

// General API documentation for swaggo. Run `swag init -g cmd/network-monitor/docs.go -o internal/httpapi/docs` to regenerate.
//
// @title           network-monitor API
// @version         1.0
// @description     Live passenger counts and travel times for the transport network.
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
