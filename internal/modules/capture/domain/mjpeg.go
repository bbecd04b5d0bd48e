package domain

// ExtractJPEGs scans an MJPEG byte stream for complete JPEG images, returning
// every whole frame found plus the unconsumed remainder of the buffer.
// Frames are delimited by the JPEG SOI (FFD8) and EOI (FFD9) markers; a
// trailing partial frame stays in the remainder until more bytes arrive.
func ExtractJPEGs(buf []byte) (frames [][]byte, rest []byte) {
	i := 0
	n := len(buf)
	for i+1 < n {
		if buf[i] != 0xFF || buf[i+1] != 0xD8 {
			i++
			continue
		}
		end := -1
		for j := i + 2; j+1 < n; j++ {
			if buf[j] == 0xFF && buf[j+1] == 0xD9 {
				end = j + 2
				break
			}
		}
		if end < 0 {
			break
		}
		frame := make([]byte, end-i)
		copy(frame, buf[i:end])
		frames = append(frames, frame)
		i = end
	}
	return frames, buf[i:]
}
