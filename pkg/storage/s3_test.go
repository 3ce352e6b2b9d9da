package storage

import "testing"

func TestObjectURL(t *testing.T) {
	aws := S3Config{Region: "us-west-2", Bucket: "wedding-photos"}
	if got := ObjectURL(aws, "/site/wedding.ics"); got != "https://wedding-photos.s3.us-west-2.amazonaws.com/site/wedding.ics" {
		t.Fatalf("unexpected aws url %q", got)
	}
	minio := S3Config{Endpoint: "http://localhost:9000/", Bucket: "photos"}
	if got := ObjectURL(minio, "uploads/a.jpg"); got != "http://localhost:9000/photos/uploads/a.jpg" {
		t.Fatalf("unexpected endpoint url %q", got)
	}
}

func TestPresignExpireDefault(t *testing.T) {
	s := &S3{}
	if s.PresignExpire().Minutes() != 15 {
		t.Fatalf("expected 15 minute default, got %v", s.PresignExpire())
	}
	s.cfg.PresignExpireMinutes = 5
	if s.PresignExpire().Minutes() != 5 {
		t.Fatalf("expected 5 minutes, got %v", s.PresignExpire())
	}
}

func TestBucket(t *testing.T) {
	s := &S3{cfg: S3Config{Bucket: "wedding-photos"}}
	if s.Bucket() != "wedding-photos" {
		t.Fatalf("unexpected bucket %q", s.Bucket())
	}
}
