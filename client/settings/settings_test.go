package settings

import "testing"

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    Settings
		wantErr bool
	}{
		{"empty", "", Defaults(), false},
		{"partial", `{"playerName":"ada"}`, Settings{Address: "localhost:7373", PlayerName: "ada"}, false},
		{"full", `{"address":"10.0.0.2:7373","playerName":"bo","vectorMove":true}`, Settings{Address: "10.0.0.2:7373", PlayerName: "bo", VectorMove: true}, false},
		{"corrupt", `{`, Defaults(), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.data))
			if (err != nil) != tt.wantErr {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}
