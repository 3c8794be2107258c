package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log является глобальным экземпляром логгера для всего приложения.
// До вызова Init работает с настройками logrus по умолчанию, чтобы ядро
// можно было использовать как библиотеку без main.
var Log = logrus.New()

// Init инициализирует глобальный логгер из переменных окружения.
// Эта функция должна быть вызвана один раз при старте приложения в main.go.
func Init() {
	// 1. Уровень логирования. По умолчанию - "info". Для отладки можно выставить "debug".
	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}

	// 2. Форматтер: "json" - для продакшена, "text" - для разработки.
	logFormat := os.Getenv("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "text"
	}
	Configure(logLevel, logFormat)

	// 3. Пишем в стандартный вывод.
	Log.SetOutput(os.Stdout)
}

// Configure применяет уровень и формат явно (например, из файла конфигурации).
// Пустые значения не меняют текущие настройки.
func Configure(level, format string) {
	if level != "" {
		parsed, err := logrus.ParseLevel(level)
		if err != nil {
			parsed = logrus.InfoLevel
		}
		Log.SetLevel(parsed)
	}

	switch strings.ToLower(format) {
	case "text":
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	case "json":
		Log.SetFormatter(&logrus.JSONFormatter{})
	}
}
