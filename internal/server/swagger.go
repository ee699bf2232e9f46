package server

//go:generate swag init -g internal/server/swagger.go -o docs

// @title AMR Burden Prediction API
// @version 0.1
// @description Upload gene-abundance tables, score antimicrobial resistance burden per sample and download the results.
// @contact.name AMR Burden Maintainers
// @BasePath /
