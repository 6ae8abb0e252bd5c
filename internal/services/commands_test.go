package services

import (
	"testing"

	"github.com/imyashkale/kmsdash/internal/models"
)

// TestGenerateCommands tests the four-command template and address selection
func TestGenerateCommands(t *testing.T) {
	tests := []struct {
		name          string
		cfg           models.ServerConfig
		gvlk          string
		wantSetServer string
	}{
		{
			name:          "Wildcard bind substitutes display address",
			cfg:           models.ServerConfig{IP: "0.0.0.0", Port: "1688", DisplayIP: "10.0.0.5"},
			gvlk:          "W269N-WFGWX-YVC9B-4J6C9-T83GX",
			wantSetServer: "slmgr /skms 10.0.0.5:1688",
		},
		{
			name:          "Concrete bind used regardless of display address",
			cfg:           models.ServerConfig{IP: "192.168.1.1", Port: "1688", DisplayIP: "10.0.0.5"},
			gvlk:          "W269N-WFGWX-YVC9B-4J6C9-T83GX",
			wantSetServer: "slmgr /skms 192.168.1.1:1688",
		},
		{
			name:          "Custom port flows into the address",
			cfg:           models.ServerConfig{IP: "0.0.0.0", Port: "1700", DisplayIP: "172.16.4.4"},
			gvlk:          "NPPR9-FWDCX-D2C8J-H872K-2YT43",
			wantSetServer: "slmgr /skms 172.16.4.4:1700",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmds := GenerateCommands(tt.gvlk, tt.cfg)

			if want := "slmgr /ipk " + tt.gvlk; cmds.InstallKey != want {
				t.Errorf("Expected install command %q, got %q", want, cmds.InstallKey)
			}
			if cmds.SetServer != tt.wantSetServer {
				t.Errorf("Expected set-server command %q, got %q", tt.wantSetServer, cmds.SetServer)
			}
			if cmds.Activate != "slmgr /ato" {
				t.Errorf("Expected activate command slmgr /ato, got %q", cmds.Activate)
			}
			if cmds.CheckStatus != "slmgr /xpr" {
				t.Errorf("Expected status command slmgr /xpr, got %q", cmds.CheckStatus)
			}
		})
	}
}

// TestGenerateCommandsIsPure tests that generation has no hidden state
func TestGenerateCommandsIsPure(t *testing.T) {
	cfg := models.ServerConfig{IP: "0.0.0.0", Port: "1688", DisplayIP: "10.0.0.5"}

	first := GenerateCommands("ABCDE-12345", cfg)
	second := GenerateCommands("ABCDE-12345", cfg)

	if first != second {
		t.Errorf("Same inputs produced different command sets: %+v vs %+v", first, second)
	}
}
