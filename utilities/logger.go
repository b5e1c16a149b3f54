package utilities

import (
	"io"
	"log"
	"os"
	"strings"
	"time"
)

var (
	InfoLogger  *log.Logger
	ErrorLogger *log.Logger
	DebugLogger *log.Logger
)

func init() {
	// Garante loggers válidos mesmo antes de InitLogger (ex.: em testes)
	InfoLogger = log.New(io.Discard, "", 0)
	ErrorLogger = log.New(io.Discard, "", 0)
	DebugLogger = log.New(io.Discard, "", 0)
}

// InitLogger inicializa os loggers. level "debug" habilita o DebugLogger.
func InitLogger(level string) {
	flags := log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile
	log.SetFlags(flags)

	InfoLogger = log.New(os.Stdout, "\033[32m[INFO]\033[0m ", flags)
	ErrorLogger = log.New(os.Stderr, "\033[31m[ERROR]\033[0m ", flags)
	if strings.EqualFold(level, "debug") {
		DebugLogger = log.New(os.Stdout, "\033[36m[DEBUG]\033[0m ", flags)
	} else {
		DebugLogger = log.New(io.Discard, "", 0)
	}
}

// LogRequest registra informações sobre a requisição HTTP
func LogRequest(requestID, method, path, remoteAddr string, status int, duration time.Duration) {
	InfoLogger.Printf("[%s] %s %s %s %d %v", requestID, method, path, remoteAddr, status, duration)
}

// LogError registra erros com o contexto em que ocorreram
func LogError(err error, context string) {
	ErrorLogger.Printf("%s: %v", context, err)
}

// LogDebug registra informações de debug
func LogDebug(format string, v ...interface{}) {
	DebugLogger.Printf(format, v...)
}

// LogInfo registra informações gerais
func LogInfo(format string, v ...interface{}) {
	InfoLogger.Printf(format, v...)
}
