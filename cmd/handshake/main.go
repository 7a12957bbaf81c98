package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/sachaservan/bigdh/elgamal"
)

// command-line arguments to the handshake benchmark
var args struct {
	Trials             int    `default:"10" help:"number of handshakes to run"`
	KeySize            int    `default:"256" help:"key size in bits"`
	Seed               int64  `default:"0" help:"random seed (0 picks one at random)"`
	MaxCoprimeAttempts int    `default:"4096" help:"draws per coprime search before giving up (0 = unbounded)"`
	Interactive        bool   `default:"false" help:"prompt for trials and key size on stdin"`
	Verbose            bool   `default:"false" help:"dump keys and secrets of every handshake"`
	ExperimentSaveFile string `help:"write the experiment results to this json file"`
}

// promptInt writes label to w and reads one positive integer line from in.
func promptInt(in *bufio.Scanner, w io.Writer, label string) (int, error) {
	fmt.Fprint(w, label)
	if !in.Scan() {
		if err := in.Err(); err != nil {
			return 0, err
		}
		return 0, io.ErrUnexpectedEOF
	}

	n, err := strconv.Atoi(strings.TrimSpace(in.Text()))
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", in.Text())
	}
	if n <= 0 {
		return 0, fmt.Errorf("%v must be positive", n)
	}
	return n, nil
}

func main() {

	arg.MustParse(&args)

	if args.Interactive {
		var err error
		input := bufio.NewScanner(os.Stdin)
		if args.Trials, err = promptInt(input, os.Stdout, "Trial times: "); err != nil {
			log.Fatalf("[Harness]: reading trial count: %v", err)
		}
		if args.KeySize, err = promptInt(input, os.Stdout, "Key size: "); err != nil {
			log.Fatalf("[Harness]: reading key size: %v", err)
		}
	}

	opts := []elgamal.Option{elgamal.WithMaxCoprimeAttempts(args.MaxCoprimeAttempts)}
	if args.Seed != 0 {
		opts = append(opts, elgamal.WithSeed(args.Seed))
	}

	log.Printf("[Harness]: running %v handshakes with %v bit keys\n", args.Trials, args.KeySize)

	experiment, err := runExperiment(args.KeySize, args.Trials, args.Verbose, opts...)
	if err != nil {
		log.Fatalf("[Harness]: %v", err)
	}

	log.Printf("[Harness]: average handshake time for %v bit key is %.3f ms (std %.3f ms)\n",
		experiment.KeySize, experiment.AvgHandshakeMS, experiment.StdHandshakeMS)

	if args.ExperimentSaveFile != "" {
		if err := saveExperiment(experiment, args.ExperimentSaveFile); err != nil {
			log.Printf("[Error]: %v when saving to file\n", err)
		} else {
			log.Printf("[Harness]: results saved to %v (run %v)\n", args.ExperimentSaveFile, experiment.ID)
		}
	}

	if experiment.NumMismatches > 0 {
		log.Fatalf("[Harness]: %v of %v handshakes produced different secrets", experiment.NumMismatches, experiment.NumTrials)
	}
}
