package model

import "testing"

func TestArtifactFileName(t *testing.T) {
	tests := []struct {
		kind     DownloadKind
		expected string
	}{
		{DownloadResult, "abc.png"},
		{DownloadImages, "abc.zip"},
		{DownloadAnimation, "abc.gif"},
	}

	for _, test := range tests {
		if got := ArtifactFileName("abc", test.kind); got != test.expected {
			t.Errorf("ArtifactFileName(%s) = %s, expected %s", test.kind, got, test.expected)
		}
	}
}

func TestArtifactTask_DisplayName(t *testing.T) {
	task := &ArtifactTask{FileName: "abc.png"}
	if task.DisplayName() != "abc.png" {
		t.Errorf("Expected planned name, got %s", task.DisplayName())
	}

	task.OutputPath = "/tmp/out/abc (1).png"
	if task.DisplayName() != "abc (1).png" {
		t.Errorf("Expected saved name, got %s", task.DisplayName())
	}
}

func TestArtifactStatus_IsFinished(t *testing.T) {
	if ArtifactPending.IsFinished() || ArtifactDownloading.IsFinished() {
		t.Error("Pending and downloading are not finished")
	}
	if !ArtifactCompleted.IsFinished() || !ArtifactError.IsFinished() {
		t.Error("Completed and error are finished")
	}
}
