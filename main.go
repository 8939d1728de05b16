package main

import (
	"fmt"
	"os"
	"time"

	json "github.com/KevinWang15/go-json5"

	"github.com/bob-anderson-ok/eclipsePLD/mcmc"
	"github.com/bob-anderson-ok/eclipsePLD/pld"
	"gonum.org/v1/gonum/stat"
)

const version = "1_0_0"

type EclipseEvent struct {
	ShowInput            bool
	Title                string
	PathToFramesFits     string
	PathToPhotometryFile string
	NumPixels            int
	BoxSizePixels        int
	PeriodDays           float64
	BinWidthsSecs        []float64
	BinWidthStartSecs    float64
	BinWidthEndSecs      float64
	BinWidthStepSecs     float64
	Params               []float64
	StepSizes            []float64
	ParNames             []string
	MCMCNumSamples       int
	MCMCBurnIn           int
	MCMCSeed             int64
}

func main() {

	programStart := time.Now()

	args := os.Args

	if len(args) != 2 {
		fmt.Println("\n\tWrong number of arguments.\n\tUsage: eclipsePLD <parameter-file>")
		os.Exit(1)
	}

	path := args[1]

	// Read the Json5 (or Json) parameter file
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tAttempt to read input file %q failed: %w\n", path, err))
		os.Exit(2)
	}

	// Parse json(5) data into a generic container
	var jsonTable map[string]interface{}
	err = json.Unmarshal(data, &jsonTable)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tFormat error in file %q: %w\n", path, err))
		os.Exit(3)
	}

	var event EclipseEvent
	msg, ok := validateJsonFileAndFillEvent(jsonTable, &event)
	if !ok {
		fmt.Println(msg)
		os.Exit(4)
	}

	// Check for user wanting printout of complete jsonTable
	if event.ShowInput {
		fmt.Printf("%s", "\nPrintout of  complete jsonTable contents...\n")
		fmt.Println(string(data))
	}

	fmt.Printf("\nVersion %s\n\n", version)

	if n := pld.NumParams(event.NumPixels); len(event.Params) != n {
		fmt.Println(fmt.Errorf("\n\tparams has %d entries; %d pixels need %d", len(event.Params), event.NumPixels, n))
		os.Exit(5)
	}

	steps, err := pld.ParseStepSizes(event.StepSizes)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tBad stepsize entry: %w", err))
		os.Exit(5)
	}

	phot, err := loadPhotometry(event.PathToPhotometryFile)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tReading photometry failed: %w", err))
		os.Exit(6)
	}
	fmt.Printf("Photometry file has %d frames\n", len(phot.Phase))

	start := time.Now() // Time the FITS read
	frames, err := loadFrameCube(event.PathToFramesFits)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tReading frame cube failed: %w", err))
		os.Exit(7)
	}
	fmt.Printf("Reading %d frames took %s\n", len(frames), time.Since(start))

	if len(frames) != len(phot.Phase) {
		fmt.Println(fmt.Errorf("\n\tFrame cube has %d frames but photometry has %d entries",
			len(frames), len(phot.Phase)))
		os.Exit(8)
	}

	good := make([]bool, len(phot.Good))
	nGood := 0
	for i, g := range phot.Good {
		good[i] = g != 0
		if good[i] {
			nGood++
		}
	}
	if nGood == 0 {
		fmt.Println(fmt.Errorf("\n\tNo frames are flagged good"))
		os.Exit(8)
	}
	fmt.Printf("%d of %d frames flagged good\n", nGood, len(frames))

	pixels, err := selectBrightestPixels(frames, good, phot.XCenter, phot.YCenter,
		event.BoxSizePixels, event.NumPixels)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tPixel selection failed: %w", err))
		os.Exit(9)
	}
	fmt.Printf("Selected pixels (brightest first): %v\n", pixels)

	start = time.Now()
	_, phat, _, err := pld.ExtractFlux(frames, pixels)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tFlux extraction failed: %w", err))
		os.Exit(10)
	}
	fmt.Printf("Flux extraction took %s\n", time.Since(start))

	// Keep only the good frames from here on.
	phat = pld.FilterGood(phat, good)
	phase := pld.FilterGoodVec(phot.Phase, good)
	aplev := pld.FilterGoodVec(phot.Aplev, good)
	aperr := pld.FilterGoodVec(phot.Aperr, good)

	// Candidate bin widths arrive in seconds; the sweep works in phase units.
	secsPerPhase := event.PeriodDays * 86400.0
	widths := make([]float64, len(event.BinWidthsSecs))
	for i, w := range event.BinWidthsSecs {
		widths[i] = w / secsPerPhase
	}

	fmt.Printf("\nSweeping %d bin widths (%0.0f to %0.0f seconds)...\n",
		len(widths), event.BinWidthsSecs[0], event.BinWidthsSecs[len(event.BinWidthsSecs)-1])

	start = time.Now()
	best, sweep, err := pld.OptimizeBinWidth(widths, phase, phat, aplev, aperr, event.Params, pld.CurveFit)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tBin width sweep failed: %w", err))
		os.Exit(11)
	}
	fmt.Printf("Bin width sweep took %s\n", time.Since(start))
	fmt.Printf("Best bin width is %0.1f seconds with reduced chi-squared %0.6f\n",
		best.Width*secsPerPhase, best.RedChiSq)

	MakeRedChiSqPlot(sweep, event.PeriodDays, "redchisq.png")

	// Rebin at the winning width and normalize by the binned mean. The
	// unbinned series gets the same factor so both live on one scale.
	binned := pld.BinAll(phase, phat, aplev, aperr, best.Width)
	norm := stat.Mean(binned.Phot, nil)
	for i := range binned.Phot {
		binned.Phot[i] /= norm
		binned.PhotErr[i] /= norm
	}
	photNorm := make([]float64, len(aplev))
	for i := range aplev {
		photNorm[i] = aplev[i] / norm
	}
	fmt.Printf("Unbinned normalized photometry scatter is %0.6f\n", stat.StdDev(photNorm, nil))

	design := pld.PackDesign(binned.Phat, binned.Phase)

	fmt.Printf("\nRunning MCMC: %d samples after %d burn-in, seed %d\n",
		event.MCMCNumSamples, event.MCMCBurnIn, event.MCMCSeed)

	start = time.Now()
	sampler := mcmc.New(mcmc.Config{
		NumSamples: event.MCMCNumSamples,
		BurnIn:     event.MCMCBurnIn,
		Seed:       event.MCMCSeed,
	})
	chain, bestReduced, err := sampler.Sample(binned.Phot, binned.PhotErr,
		pld.ZenDesign, design, best.Params, steps)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tMCMC failed: %w", err))
		os.Exit(12)
	}
	fmt.Printf("MCMC of %d samples took %s\n", len(chain), time.Since(start))

	bestFull, err := pld.ExpandParams(bestReduced, steps, best.Params)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tParameter expansion failed: %w", err))
		os.Exit(13)
	}

	model := pld.ZenDesign(bestFull, design)
	redChiSq := pld.ReducedChiSquared(binned.Phot, model, binned.PhotErr)
	fmt.Printf("\nReduced chi-squared of MCMC best fit is %0.6f\n\n", redChiSq)
	for i, name := range event.ParNames {
		fmt.Printf("%20s  %12.6g\n", name, bestFull[i])
	}

	// Counterfactual model with the eclipse switched off isolates the
	// systematics so they can be divided out of the plot.
	depthIndex := -1
	for i, name := range event.ParNames {
		if name == "Depth" {
			depthIndex = i
		}
	}
	if depthIndex < 0 {
		fmt.Println(fmt.Errorf("\n\tparname has no \"Depth\" entry"))
		os.Exit(14)
	}

	noEclParams := make([]float64, len(bestFull))
	copy(noEclParams, bestFull)
	noEclParams[depthIndex] = 0.0
	noEcl := pld.ZenDesign(noEclParams, design)

	corrected := make([]float64, len(binned.Phot))
	eclipseCurve := make([]float64, len(model))
	for i := range corrected {
		corrected[i] = binned.Phot[i] - noEcl[i] + 1.0
		eclipseCurve[i] = model[i] - noEcl[i] + 1.0
	}

	title := event.Title
	if title == "" {
		title = "Best fit eclipse light curve"
	}
	MakeLightCurvePlot(binned.Phase, corrected, eclipseCurve, title, "normlc.png")

	fmt.Printf("\nTotal program run time is %s\n", time.Since(programStart))
}
