package auth_integration_tests

import (
	"log"
	"os"
	"sync"
	"testing"

	"github.com/ZRunner/Axobot-API-V2/integration_tests/testutils"
)

var (
	testEnv     *testutils.TestEnvironment
	testEnvErr  error
	testEnvOnce sync.Once
)

func TestMain(m *testing.M) {
	if os.Getenv("SKIP_INTEGRATION_TESTS") != "" {
		log.Println("Skipping auth integration tests")
		os.Exit(0)
	}

	testEnvOnce.Do(func() {
		testEnv, testEnvErr = testutils.NewTestEnvironment()
	})
	if testEnvErr != nil {
		log.Fatalf("Failed to setup test environment: %v", testEnvErr)
	}

	code := m.Run()

	testEnv.Cleanup()
	os.Exit(code)
}
