package sensors

// Packet names.
const (
	BumpsWheeldrops        = "Bumps Wheeldrops"
	Wall                   = "Wall"
	CliffLeft              = "Cliff Left"
	CliffFrontLeft         = "Cliff Front Left"
	CliffFrontRight        = "Cliff Front Right"
	CliffRight             = "Cliff Right"
	VirtualWall            = "Virtual Wall"
	Overcurrents           = "Overcurrents"
	DirtDetect             = "Dirt Detect"
	Unused1                = "Unused 1"
	IROpcode               = "IR Opcode"
	Buttons                = "Buttons"
	Distance               = "Distance"
	Angle                  = "Angle"
	ChargingState          = "Charging State"
	Voltage                = "Voltage"
	Current                = "Current"
	Temperature            = "Temperature"
	BatteryCharge          = "Battery Charge"
	BatteryCapacity        = "Battery Capacity"
	WallSignal             = "Wall Signal"
	CliffLeftSignal        = "Cliff Left Signal"
	CliffFrontLeftSignal   = "Cliff Front Left Signal"
	CliffFrontRightSignal  = "Cliff Front Right Signal"
	CliffRightSignal       = "Cliff Right Signal"
	Unused2                = "Unused 2"
	Unused3                = "Unused 3"
	ChargerAvailable       = "Charger Available"
	OpenInterfaceMode      = "Open Interface Mode"
	SongNumber             = "Song Number"
	SongPlaying            = "Song Playing?"
	OIStreamNumPackets     = "Oi Stream Num Packets"
	Velocity               = "Velocity"
	RequestedRadius        = "Requested Radius"
	RequestedVelocityRight = "Requested Velocity Right"
	RequestedVelocityLeft  = "Requested Velocity Left"
	EncoderCountsLeft      = "Encoder Counts Left"
	EncoderCountsRight     = "Encoder Counts Right"
	LightBumper            = "Light Bumper"
	LightBumpLeft          = "Light Bump Left"
	LightBumpFrontLeft     = "Light Bump Front Left"
	LightBumpCenterLeft    = "Light Bump Center Left"
	LightBumpCenterRight   = "Light Bump Center Right"
	LightBumpFrontRight    = "Light Bump Front Right"
	LightBumpRight         = "Light Bump Right"
	IROpcodeLeft           = "IR Opcode Left"
	IROpcodeRight          = "IR Opcode Right"
	LeftMotorCurrent       = "Left Motor Current"
	RightMotorCurrent      = "Right Motor Current"
	MainBrushCurrent       = "Main Brush Current"
	SideBrushCurrent       = "Side Brush Current"
	Stasis                 = "Stasis"
)

// Query blocks.
const (
	BlockBasic       BlockID = 0
	BlockBumps       BlockID = 1
	BlockMotion      BlockID = 2
	BlockBattery     BlockID = 3
	BlockSignals     BlockID = 4
	BlockStatus      BlockID = 5
	BlockLegacy      BlockID = 6
	BlockAll         BlockID = 100
	BlockExtended    BlockID = 101
	BlockLightBumps  BlockID = 106
	BlockMotorStatus BlockID = 107
)

var (
	onOff    = Range{0, 1}
	byteVal  = Range{0, 0xff}
	word     = Range{0, 0xffff}
	sword    = Range{-0x8000, 0x7fff}
	signal   = Range{0, 4095}
	velocity = Range{-500, 500}
)

// Default is the Create 2 Open Interface packet table.
var Default = NewBuilder().
	Add(7, 1, Range{0, 15}, BumpsWheeldrops, 0, 1, 6, 100).
	Add(8, 1, onOff, Wall, 0, 1, 6, 100).
	Add(9, 1, onOff, CliffLeft, 0, 1, 6, 100).
	Add(10, 1, onOff, CliffFrontLeft, 0, 1, 6, 100).
	Add(11, 1, onOff, CliffFrontRight, 0, 1, 6, 100).
	Add(12, 1, onOff, CliffRight, 0, 1, 6, 100).
	Add(13, 1, onOff, VirtualWall, 0, 1, 6, 100).
	Add(14, 1, Range{0, 29}, Overcurrents, 0, 1, 6, 100).
	Add(15, 1, byteVal, DirtDetect, 0, 1, 6, 100).
	Add(16, 1, byteVal, Unused1, 0, 1, 6, 100).
	Add(17, 1, byteVal, IROpcode, 0, 2, 6, 100).
	Add(18, 1, byteVal, Buttons, 0, 2, 6, 100).
	Add(19, 2, sword, Distance, 0, 2, 6, 100).
	Add(20, 2, sword, Angle, 0, 2, 6, 100).
	Add(21, 1, Range{0, 6}, ChargingState, 0, 3, 6, 100).
	Add(22, 2, word, Voltage, 0, 3, 6, 100).
	Add(23, 2, sword, Current, 0, 3, 6, 100).
	Add(24, 1, Range{-128, 127}, Temperature, 0, 3, 6, 100).
	Add(25, 2, word, BatteryCharge, 0, 3, 6, 100).
	Add(26, 2, word, BatteryCapacity, 0, 3, 6, 100).
	Add(27, 2, Range{0, 1023}, WallSignal, 4, 6, 100).
	Add(28, 2, signal, CliffLeftSignal, 4, 6, 100).
	Add(29, 2, signal, CliffFrontLeftSignal, 4, 6, 100).
	Add(30, 2, signal, CliffFrontRightSignal, 4, 6, 100).
	Add(31, 2, signal, CliffRightSignal, 4, 6, 100).
	Add(32, 1, byteVal, Unused2, 4, 6, 100).
	Add(33, 2, word, Unused3, 4, 6, 100).
	Add(34, 1, Range{0, 3}, ChargerAvailable, 4, 6, 100).
	Add(35, 1, Range{0, 3}, OpenInterfaceMode, 5, 6, 100).
	Add(36, 1, Range{0, 4}, SongNumber, 5, 6, 100).
	Add(37, 1, onOff, SongPlaying, 5, 6, 100).
	Add(38, 1, Range{0, 108}, OIStreamNumPackets, 5, 6, 100).
	Add(39, 2, velocity, Velocity, 5, 6, 100).
	Add(40, 2, sword, RequestedRadius, 5, 6, 100).
	Add(41, 2, velocity, RequestedVelocityRight, 5, 6, 100).
	Add(42, 2, velocity, RequestedVelocityLeft, 5, 6, 100).
	Add(43, 2, sword, EncoderCountsLeft, 100, 101).
	Add(44, 2, sword, EncoderCountsRight, 100, 101).
	Add(45, 1, Range{0, 127}, LightBumper, 100, 101).
	Add(46, 2, signal, LightBumpLeft, 100, 101, 106).
	Add(47, 2, signal, LightBumpFrontLeft, 100, 101, 106).
	Add(48, 2, signal, LightBumpCenterLeft, 100, 101, 106).
	Add(49, 2, signal, LightBumpCenterRight, 100, 101, 106).
	Add(50, 2, signal, LightBumpFrontRight, 100, 101, 106).
	Add(51, 2, signal, LightBumpRight, 100, 101, 106).
	Add(52, 1, byteVal, IROpcodeLeft, 100, 101).
	Add(53, 1, byteVal, IROpcodeRight, 100, 101).
	Add(54, 2, sword, LeftMotorCurrent, 100, 101, 107).
	Add(55, 2, sword, RightMotorCurrent, 100, 101, 107).
	Add(56, 2, sword, MainBrushCurrent, 100, 101, 107).
	Add(57, 2, sword, SideBrushCurrent, 100, 101, 107).
	Add(58, 1, Range{0, 3}, Stasis, 100, 101, 107).
	Block(BlockBasic, 26).
	Block(BlockBumps, 10).
	Block(BlockMotion, 6).
	Block(BlockBattery, 10).
	Block(BlockSignals, 14).
	Block(BlockStatus, 12).
	Block(BlockLegacy, 52).
	Block(BlockAll, 80).
	Block(BlockExtended, 28).
	Block(BlockLightBumps, 12).
	Block(BlockMotorStatus, 9).
	MustBuild()
