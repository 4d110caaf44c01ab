package resources

import "testing"

func TestDatabasesURI(t *testing.T) {
	if got := DatabasesURI("myserver"); got != "flexpg://myserver/databases" {
		t.Fatalf("unexpected uri: %s", got)
	}
}
