//go:build cgo

package dedupe

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// featureSimilarity matches ORB keypoint descriptors between two cells with
// a brute-force Hamming matcher in cross-check mode, so only mutual best
// matches count. The images match when the ratio of matches to the smaller
// keypoint set reaches minMatchRatio. An image with no detectable keypoints
// never matches anything.
type featureSimilarity struct {
	minMatchRatio float64
}

func (f featureSimilarity) Similar(a, b image.Image) (bool, error) {
	kpA, descA, err := orbDescriptors(a)
	if err != nil {
		return false, err
	}
	defer descA.Close()

	kpB, descB, err := orbDescriptors(b)
	if err != nil {
		return false, err
	}
	defer descB.Close()

	if kpA == 0 || kpB == 0 {
		return false, nil
	}

	matcher := gocv.NewBFMatcherWithParams(gocv.NormHamming, true)
	defer matcher.Close()

	matched := 0
	for _, candidates := range matcher.KnnMatch(descA, descB, 1) {
		if len(candidates) > 0 {
			matched++
		}
	}

	smaller := kpA
	if kpB < smaller {
		smaller = kpB
	}
	ratio := float64(matched) / float64(smaller)
	return ratio >= f.minMatchRatio, nil
}

// orbDescriptors detects ORB keypoints on the grayscale version of img and
// returns the keypoint count plus the descriptor matrix. The caller owns
// the returned Mat.
func orbDescriptors(img image.Image) (int, gocv.Mat, error) {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return 0, gocv.NewMat(), fmt.Errorf("converting image for feature detection: %w", err)
	}
	defer mat.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)

	orb := gocv.NewORB()
	defer orb.Close()

	mask := gocv.NewMat()
	defer mask.Close()

	keypoints, descriptors := orb.DetectAndCompute(gray, mask)
	if descriptors.Empty() {
		descriptors.Close()
		return 0, gocv.NewMat(), nil
	}
	return len(keypoints), descriptors, nil
}
