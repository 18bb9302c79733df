package appenv

import (
	"bufio"
	"log"
	"os"
	"strings"
)

var (
	isProd  = false
	isStag  = false
	isLocal = false
	EnvName = ""
)

func init() {
	loadDotEnvFileIfAny()

	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "local"
	}

	switch appEnv {
	case "local":
		isLocal = true
	case "stag":
		isStag = true
	case "prod":
		isProd = true
	default:
		log.Fatal("Unknown APP_ENV value: ", appEnv, ", aborting...")
	}

	EnvName = appEnv
}

func loadDotEnvFileIfAny() {
	file, err := os.Open(".env")
	if err != nil {
		// running without a .env file is fine, the process env is the
		// source of truth then
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}

		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}

		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)

		// strip surrounding quotes if any
		var q byte = '"'
		if len(val) >= 2 && val[0] == q && val[len(val)-1] == q {
			val = val[1 : len(val)-1]
		}

		err := os.Setenv(key, val)
		if err != nil {
			log.Fatal("can not set env var error: ", err)
		}
	}
}

func IsProd() bool {
	return isProd
}

func IsStag() bool {
	return isStag
}

func IsLocal() bool {
	return isLocal
}

func IsStagOrLocal() bool {
	return IsStag() || IsLocal()
}
