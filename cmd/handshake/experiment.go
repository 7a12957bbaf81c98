package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"log"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/gonum/stat"
	"github.com/google/uuid"
	"github.com/sachaservan/bigdh/elgamal"
)

// Experiment records one run of the harness and can be saved to a json file
// for further analysis.
type Experiment struct {
	ID             string    `json:"id"`
	KeySize        int       `json:"key_size"`
	FactorBaseSize int       `json:"factor_base_size"`
	NumTrials      int       `json:"num_trials"`
	SetupMS        float64   `json:"setup_ms"`
	HandshakeMS    []float64 `json:"handshake_ms"`
	AvgHandshakeMS float64   `json:"avg_handshake_ms"`
	StdHandshakeMS float64   `json:"std_handshake_ms"`
	NumMismatches  int       `json:"num_mismatches"`
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// handshake runs key generation and both sides of the exchange once and
// reports whether the two shared secrets agree.
func handshake(engine *elgamal.Engine, verbose bool) (bool, error) {
	pk, sk, err := engine.GenerateKeys()
	if err != nil {
		return false, fmt.Errorf("generating keys: %w", err)
	}

	clientSecret, cipher, err := engine.ClientSide(pk)
	if err != nil {
		return false, fmt.Errorf("client side: %w", err)
	}

	serverSecret, err := engine.ServerSide(sk, cipher)
	if err != nil {
		return false, fmt.Errorf("server side: %w", err)
	}

	if verbose {
		log.Printf("[Harness]: handshake values\n%s", spew.Sdump(pk, sk, cipher, clientSecret, serverSecret))
	}

	return clientSecret.Cmp(serverSecret) == 0, nil
}

// runExperiment builds an engine for keySize and times numTrials handshakes on it.
func runExperiment(keySize, numTrials int, verbose bool, opts ...elgamal.Option) (*Experiment, error) {
	experiment := &Experiment{
		ID:          uuid.New().String(),
		KeySize:     keySize,
		NumTrials:   numTrials,
		HandshakeMS: make([]float64, 0, numTrials),
	}

	start := time.Now()
	engine, err := elgamal.NewEngine(keySize, opts...)
	if err != nil {
		return nil, err
	}
	experiment.SetupMS = millis(time.Since(start))
	experiment.FactorBaseSize = engine.FactorBaseLen()

	log.Printf("[Harness]: calculating %v primes took %.3f ms\n", experiment.FactorBaseSize, experiment.SetupMS)

	for i := 0; i < numTrials; i++ {
		start := time.Now()
		ok, err := handshake(engine, verbose)
		if err != nil {
			return nil, fmt.Errorf("trial %d: %w", i+1, err)
		}
		experiment.HandshakeMS = append(experiment.HandshakeMS, millis(time.Since(start)))

		if !ok {
			experiment.NumMismatches++
		}
		log.Printf("[Harness]: trial %v of %v: %v\n", i+1, numTrials, ok)
	}

	// the sample deviation of a single timing is NaN, which json cannot encode
	switch len(experiment.HandshakeMS) {
	case 0:
	case 1:
		experiment.AvgHandshakeMS = experiment.HandshakeMS[0]
	default:
		experiment.AvgHandshakeMS, experiment.StdHandshakeMS = stat.MeanStdDev(experiment.HandshakeMS, nil)
	}

	return experiment, nil
}

func saveExperiment(experiment *Experiment, filename string) error {
	file, err := json.MarshalIndent(experiment, "", " ")
	if err != nil {
		return err
	}
	return ioutil.WriteFile(filename, file, 0644)
}
