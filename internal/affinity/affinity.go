package affinity

// MaxCPUID is the largest logical CPU id an affinity mask can address.
const MaxCPUID = 1023
