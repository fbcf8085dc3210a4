package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/webbmaffian/go-hashtable/hashtable"
)

type pair struct {
	key string
	val int
}

var demoPairs = []pair{
	{"Rei", 10},
	{"Asuka", 20},
	{"Shinji", 30},
}

func runDemo(w io.Writer, log logrus.FieldLogger, capacity int) (err error) {
	t, err := hashtable.New(capacity)

	if err != nil {
		return
	}

	defer func() {
		err = errors.Join(err, t.Destroy())
	}()

	for _, p := range demoPairs {
		if err = insert(t, log, p.key, p.val); err != nil {
			return
		}
	}

	for _, p := range demoPairs {
		if err = printLookup(w, t, p.key); err != nil {
			return
		}
	}

	fmt.Fprintln(w, "\ndelete Asuka")

	if err = t.Delete("Asuka"); err != nil {
		return
	}

	log.WithField("key", "Asuka").Debug("deleted")
	fmt.Fprintln(w, "find Asuka")

	return printLookup(w, t, "Asuka")
}

func insert(t *hashtable.Table, log logrus.FieldLogger, key string, val int) (err error) {
	if err = t.Insert(key, val); err != nil {
		return
	}

	bucket, _ := t.Bucket(key)

	log.WithFields(logrus.Fields{
		"key":    key,
		"val":    val,
		"hash":   hashtable.Hash(key),
		"bucket": bucket,
	}).Debug("inserted")

	return
}

func printLookup(w io.Writer, t *hashtable.Table, key string) error {
	val, err := t.Get(key)

	switch {
	case errors.Is(err, hashtable.ErrNotFound):
		fmt.Fprintf(w, "%s: not found\n", key)
	case err != nil:
		return err
	default:
		fmt.Fprintf(w, "%s: %d\n", key, val)
	}

	return nil
}
