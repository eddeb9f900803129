package stream

import (
	"testing"

	"talentpool/internal/models"
)

func TestPublishDeliversToCompanySubscribers(t *testing.T) {
	hub := NewHub(nil, 4)
	subA := hub.Subscribe(1)
	defer subA.Close()
	subB := hub.Subscribe(2)
	defer subB.Close()

	hub.Publish(models.ActivityRecord{CompanyID: 1, Type: models.ActivityPipelineMove})

	select {
	case rec := <-subA.C:
		if rec.Type != models.ActivityPipelineMove {
			t.Fatalf("type=%s", rec.Type)
		}
	default:
		t.Fatalf("subscriber for company 1 got nothing")
	}
	select {
	case rec := <-subB.C:
		t.Fatalf("company 2 subscriber received foreign record: %+v", rec)
	default:
	}
}

func TestPublishDropsWhenBufferFull(t *testing.T) {
	hub := NewHub(nil, 1)
	sub := hub.Subscribe(1)
	defer sub.Close()

	hub.Publish(models.ActivityRecord{CompanyID: 1, Type: "first"})
	hub.Publish(models.ActivityRecord{CompanyID: 1, Type: "second"})

	rec := <-sub.C
	if rec.Type != "first" {
		t.Fatalf("type=%s want=first", rec.Type)
	}
	select {
	case rec := <-sub.C:
		t.Fatalf("overflow record was not dropped: %+v", rec)
	default:
	}
}

func TestCloseUnsubscribes(t *testing.T) {
	hub := NewHub(nil, 4)
	sub := hub.Subscribe(1)
	if got := hub.SubscriberCount(1); got != 1 {
		t.Fatalf("count=%d want=1", got)
	}

	sub.Close()
	sub.Close() // idempotent

	if got := hub.SubscriberCount(1); got != 0 {
		t.Fatalf("count=%d want=0", got)
	}
	if _, ok := <-sub.C; ok {
		t.Fatalf("channel still open after Close")
	}
	// Publishing after close must not panic.
	hub.Publish(models.ActivityRecord{CompanyID: 1})
}
