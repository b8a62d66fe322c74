package io

// Temporary implements a circular buffer for temporary value storage.
// It operates as a FIFO queue with a fixed capacity and separate read/write positions.
type Temporary struct {
	Capacity int // Capacity in values.

	ReadIndex  int
	WriteIndex int
	Size       int
	Data       []int32
}

var _ Channel = (*Temporary)(nil)

// Rewind resets the temporary storage to empty, resetting indices and
// reinitializing the data buffer.
func (temp *Temporary) Rewind() {
	temp.ReadIndex = 0
	temp.WriteIndex = 0
	temp.Size = 0
	temp.Data = make([]int32, temp.Capacity)
}

// Receive reads the oldest value from the buffer.
// The buffer wraps around at the capacity boundary.
func (temp *Temporary) Receive() (value int32, err error) {
	if temp.Size == 0 {
		err = ErrChannelEmpty
		return
	}

	value = temp.Data[temp.ReadIndex]
	temp.ReadIndex++
	if temp.ReadIndex == temp.Capacity {
		temp.ReadIndex = 0
	}
	temp.Size--

	return
}

// Send writes a value to the buffer at the current write position.
// Returns ErrChannelFull if the buffer has reached capacity.
func (temp *Temporary) Send(value int32) (err error) {
	if temp.Size >= temp.Capacity {
		err = ErrChannelFull
		return
	}

	if len(temp.Data) != temp.Capacity {
		temp.Rewind()
	}

	temp.Data[temp.WriteIndex] = value

	temp.WriteIndex++
	if temp.WriteIndex == temp.Capacity {
		temp.WriteIndex = 0
	}
	temp.Size++

	return
}

// Drain receives every buffered value, oldest first.
func (temp *Temporary) Drain() (values []int32) {
	for temp.Size > 0 {
		value, _ := temp.Receive()
		values = append(values, value)
	}

	return
}
