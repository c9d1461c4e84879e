package cron

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/matryer/is"
	"github.com/robfig/cron/v3"
)

func TestCronLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)
	clogger := cronLogger{logger}
	clogger.Info("foo")
	clogger.Error(fmt.Errorf("bar"), "test")
	if buf.String() != "DEBU foo\nERRO test err=bar\n" {
		t.Errorf("unexpected log output: %s", buf.String())
	}
}

func TestSchedulerAddRemove(t *testing.T) {
	is := is.New(t)
	s := NewScheduler(context.TODO())

	id, err := s.AddFunc("noop", "* * * * *", func() {})
	is.NoErr(err)
	is.Equal(len(s.Entries()), 1)

	s.Remove(id)
	is.Equal(len(s.Entries()), 0)

	_, err = s.AddFunc("bad", "not a spec", func() {})
	is.True(err != nil)
}

func TestSchedulerRunsJob(t *testing.T) {
	is := is.New(t)
	s := NewScheduler(context.TODO())

	ran := make(chan struct{}, 1)
	id, err := s.AddFunc("once", "@every 1h", func() { ran <- struct{}{} })
	is.NoErr(err)

	// Entry jobs carry the logging wrapper.
	s.Entry(cron.EntryID(id)).Job.Run()
	<-ran
}
