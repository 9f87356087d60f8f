package main

import (
	"fmt"
	"time"

	"github.com/baxromumarov/parcel"
	"github.com/baxromumarov/parcel/algo"
)

func main() {
	data := make([]int, 5_000_000)
	for i := range data {
		data[i] = i % 100_003
	}
	needle := data[4_321_987]
	data[4_321_987] = -1

	policies := []struct {
		name string
		p    parcel.Policy
	}{
		{"seq", parcel.Seq},
		{"par", parcel.Par},
		{"par/workers=2", parcel.Par.WithWorkers(2)},
	}

	fmt.Println("find -1 in 5M elements:")
	for _, tc := range policies {
		start := time.Now()
		pos, err := algo.Find(tc.p, data, -1)
		if err != nil {
			fmt.Println("error:", err)
			continue
		}
		fmt.Printf("  %-14s pos=%d  %v\n", tc.name, pos, time.Since(start))
	}
	data[4_321_987] = needle

	fmt.Println("exclusive scan of 5M elements:")
	dst := make([]int, len(data))
	for _, tc := range policies {
		start := time.Now()
		if _, err := algo.ExclusiveScan(tc.p, dst, data, 0, func(a, b int) int { return a + b }); err != nil {
			fmt.Println("error:", err)
			continue
		}
		fmt.Printf("  %-14s dst[last]=%d  %v\n", tc.name, dst[len(dst)-1], time.Since(start))
	}

	// Deferred execution: kick off two reductions, then wait.
	sumFut := algo.ReduceAsync(parcel.Par, data, 0, func(a, b int) int { return a + b })
	cntFut := algo.CountIfAsync(parcel.Par, data, func(v int) bool { return v%2 == 0 })

	sum, _ := sumFut.Wait()
	cnt, _ := cntFut.Wait()
	fmt.Printf("async: sum=%d even=%d\n", sum, cnt)
}
