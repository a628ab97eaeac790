package builtins

// KeywordDoc documents a statement keyword. Params lists the positional
// arguments of commands that take a fixed argument list, so that signature
// help can track the active one.
type KeywordDoc struct {
	Syntax        string
	Params        []string
	Documentation string
}

var keywordDocs = map[string]KeywordDoc{
	"BEEP":       {Syntax: "BEEP duration,pitch", Params: []string{"duration", "pitch"}, Documentation: "Plays a note for duration seconds, pitch semitones above middle C."},
	"BORDER":     {Syntax: "BORDER colour", Params: []string{"colour"}, Documentation: "Sets the border colour, 0 to 7."},
	"BRIGHT":     {Syntax: "BRIGHT n", Params: []string{"n"}, Documentation: "0 normal, 1 bright."},
	"CIRCLE":     {Syntax: "CIRCLE x,y,radius", Params: []string{"x", "y", "radius"}, Documentation: "Draws a circle centred on x,y."},
	"CLEAR":      {Syntax: "CLEAR [address]", Params: []string{"address"}, Documentation: "Deletes all variables and optionally sets RAMTOP."},
	"CLS":        {Syntax: "CLS", Documentation: "Clears the screen."},
	"CONTINUE":   {Syntax: "CONTINUE", Documentation: "Resumes after STOP or an error report."},
	"DATA":       {Syntax: "DATA value[,value...]", Documentation: "Holds constants for READ."},
	"DEF FN":     {Syntax: "DEF FN f(params)=expression", Documentation: "Defines a single-letter user function."},
	"DIM":        {Syntax: "DIM a(n[,n...])", Documentation: "Declares an array. String arrays have a fixed string length as their last dimension."},
	"DRAW":       {Syntax: "DRAW x,y[,angle]", Params: []string{"x", "y", "angle"}, Documentation: "Draws a line relative to the last plotted point, optionally as an arc."},
	"FLASH":      {Syntax: "FLASH n", Params: []string{"n"}, Documentation: "0 steady, 1 flashing."},
	"FOR":        {Syntax: "FOR v=start TO end [STEP step]", Documentation: "Starts a loop over the single-letter variable v."},
	"GOSUB":      {Syntax: "GO SUB line", Params: []string{"line"}, Documentation: "Calls the subroutine starting at line."},
	"GOTO":       {Syntax: "GO TO line", Params: []string{"line"}, Documentation: "Jumps to line."},
	"IF":         {Syntax: "IF condition THEN statements", Documentation: "Runs the rest of the line when condition is true."},
	"INK":        {Syntax: "INK colour", Params: []string{"colour"}, Documentation: "Sets the ink colour: 0 to 7, 8 no change, 9 contrast."},
	"INPUT":      {Syntax: "INPUT [prompt;]variable", Documentation: "Reads values typed at the keyboard."},
	"INPUT LINE": {Syntax: "INPUT LINE a$", Documentation: "Reads a whole line into a string variable without quotes."},
	"INVERSE":    {Syntax: "INVERSE n", Params: []string{"n"}, Documentation: "0 normal, 1 swaps ink and paper."},
	"LET":        {Syntax: "LET v=expression", Documentation: "Assigns a value to a variable."},
	"LIST":       {Syntax: "LIST [line]", Params: []string{"line"}, Documentation: "Lists the program from line."},
	"LLIST":      {Syntax: "LLIST [line]", Params: []string{"line"}, Documentation: "Lists the program on the printer."},
	"LOAD":       {Syntax: "LOAD name [CODE|SCREEN$|DATA]", Documentation: "Loads a program or data from tape."},
	"LPRINT":     {Syntax: "LPRINT items", Documentation: "Prints on the printer."},
	"MERGE":      {Syntax: "MERGE name", Documentation: "Merges a program from tape into the current one."},
	"NEW":        {Syntax: "NEW", Documentation: "Deletes the program and variables."},
	"NEXT":       {Syntax: "NEXT v", Documentation: "Closes the FOR loop over v."},
	"OUT":        {Syntax: "OUT port,value", Params: []string{"port", "value"}, Documentation: "Writes a byte to an I/O port."},
	"OVER":       {Syntax: "OVER n", Params: []string{"n"}, Documentation: "0 overwrites, 1 combines with exclusive or."},
	"PAPER":      {Syntax: "PAPER colour", Params: []string{"colour"}, Documentation: "Sets the paper colour: 0 to 7, 8 no change, 9 contrast."},
	"PAUSE":      {Syntax: "PAUSE frames", Params: []string{"frames"}, Documentation: "Waits for frames fiftieths of a second or a key press. PAUSE 0 waits for a key."},
	"PLAY":       {Syntax: "PLAY a$[,b$,c$]", Params: []string{"a$", "b$", "c$"}, Documentation: "Plays music strings on the 128K sound chip."},
	"PLOT":       {Syntax: "PLOT x,y", Params: []string{"x", "y"}, Documentation: "Sets the pixel at x,y."},
	"POKE":       {Syntax: "POKE address,value", Params: []string{"address", "value"}, Documentation: "Stores a byte at address."},
	"PRINT":      {Syntax: "PRINT items", Documentation: "Prints on the screen. Items are separated by ; , or '."},
	"RANDOMIZE":  {Syntax: "RANDOMIZE [seed]", Params: []string{"seed"}, Documentation: "Seeds the random number generator."},
	"READ":       {Syntax: "READ variable[,variable...]", Documentation: "Reads the next DATA values."},
	"REM":        {Syntax: "REM comment", Documentation: "Comment; the rest of the line is ignored."},
	"RESTORE":    {Syntax: "RESTORE [line]", Params: []string{"line"}, Documentation: "Moves the DATA pointer to line."},
	"RETURN":     {Syntax: "RETURN", Documentation: "Returns from a subroutine."},
	"RUN":        {Syntax: "RUN [line]", Params: []string{"line"}, Documentation: "Clears variables and runs the program from line."},
	"SAVE":       {Syntax: "SAVE name [LINE n|CODE start,length|SCREEN$|DATA a()]", Documentation: "Saves a program or data to tape."},
	"SPECTRUM":   {Syntax: "SPECTRUM", Documentation: "Switches a 128K machine to 48K BASIC."},
	"STOP":       {Syntax: "STOP", Documentation: "Stops the program."},
	"VERIFY":     {Syntax: "VERIFY name", Documentation: "Checks a saved program against memory."},
	"CAT":        {Syntax: "CAT drive", Documentation: "Interface 1: lists a microdrive cartridge."},
	"FORMAT":     {Syntax: "FORMAT \"m\";drive;name", Documentation: "Interface 1: formats a cartridge."},
	"MOVE":       {Syntax: "MOVE source TO destination", Documentation: "Interface 1: copies between streams or files."},
	"ERASE":      {Syntax: "ERASE \"m\";drive;name", Documentation: "Interface 1: deletes a file on a cartridge."},
	"OPEN":       {Syntax: "OPEN #stream,channel", Documentation: "Attaches a stream to a channel."},
	"CLOSE":      {Syntax: "CLOSE #stream", Documentation: "Detaches a stream."},
	"COPY":       {Syntax: "COPY", Documentation: "Copies the screen to the printer."},
}

// GetKeywordDoc returns documentation for a statement keyword.
func GetKeywordDoc(keyword string) (KeywordDoc, bool) {
	doc, ok := keywordDocs[keyword]
	return doc, ok
}
