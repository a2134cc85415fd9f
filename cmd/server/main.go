package main

import (
	"aulaquiz/internal/cli"
	"fmt"
	"os"
)

// @title AulaQuiz API
// @version 1.0
// @description Cuestionarios en el aula: usuarios, partidas en vivo y panel de administración
// @host localhost:8080
// @BasePath /
func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
