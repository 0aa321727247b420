package config

import (
	"os"
	"testing"
	"time"
)

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		if err := os.Unsetenv(k); err != nil {
			t.Fatalf("unset %s: %v", k, err)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	unsetEnv(t, "PORT", "STORE_DRIVER", "TOKEN_TTL", "BCRYPT_COST", "TASK_DELETE_REQUIRE_OWNER", "KAFKA_BROKERS")

	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.HTTPPort != "5000" {
		t.Fatalf("expected port 5000, got %q", c.HTTPPort)
	}
	if c.StoreDriver != DriverPostgres {
		t.Fatalf("expected postgres driver, got %q", c.StoreDriver)
	}
	if c.TokenTTL != time.Hour {
		t.Fatalf("expected 1h token ttl, got %v", c.TokenTTL)
	}
	if c.BcryptCost != 10 {
		t.Fatalf("expected bcrypt cost 10, got %d", c.BcryptCost)
	}
	if c.RequireOwnerDelete {
		t.Fatal("expected unchecked delete by default")
	}
	if c.EventsEnabled() {
		t.Fatal("expected events disabled without brokers")
	}
}

func TestLoadOwnerCheckOptIn(t *testing.T) {
	t.Setenv("TASK_DELETE_REQUIRE_OWNER", "true")

	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !c.RequireOwnerDelete {
		t.Fatal("expected owner check when TASK_DELETE_REQUIRE_OWNER=true")
	}
}

func TestLoadTrimsBrokersAndDriver(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", " k1:9092, ,k2:9092 ")
	t.Setenv("STORE_DRIVER", " Memory ")

	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(c.KafkaBrokers) != 2 || c.KafkaBrokers[0] != "k1:9092" || c.KafkaBrokers[1] != "k2:9092" {
		t.Fatalf("unexpected brokers %#v", c.KafkaBrokers)
	}
	if c.StoreDriver != DriverMemory {
		t.Fatalf("expected memory driver, got %q", c.StoreDriver)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "missing secret", cfg: Config{StoreDriver: DriverMemory}, wantErr: true},
		{name: "memory", cfg: Config{StoreDriver: DriverMemory, JWTSecret: "s"}},
		{name: "postgres without url", cfg: Config{StoreDriver: DriverPostgres, JWTSecret: "s"}, wantErr: true},
		{name: "postgres", cfg: Config{StoreDriver: DriverPostgres, JWTSecret: "s", DatabaseURL: "postgres://x"}},
		{name: "mongo without uri", cfg: Config{StoreDriver: DriverMongo, JWTSecret: "s"}, wantErr: true},
		{name: "firestore without project", cfg: Config{StoreDriver: DriverFirestore, JWTSecret: "s"}, wantErr: true},
		{name: "unknown driver", cfg: Config{StoreDriver: "bolt", JWTSecret: "s"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("validate error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
